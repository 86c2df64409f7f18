package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velais/sprintgate/pkg/tenant"
)

func testTenants() []tenant.Tenant {
	return []tenant.Tenant{
		{
			Slug:        "foresound-srl",
			OrgID:       "org_01KHVPY7F02C9NRDYWD010RZP9",
			DisplayName: "Foresound Srl",
			Project:     "Foresound Srl - Custom AI Product Development",
			Team:        "Foresound Srl - Custom AI Product Development Team",
		},
		{
			Slug:        "kablee-srl",
			OrgID:       "org_01KJ9V64J25YSFA4RCKZ9FGPTC",
			DisplayName: "Kablee Srl",
		},
	}
}

func TestNewDirectory(t *testing.T) {
	t.Parallel()

	t.Run("builds directory from valid entries", func(t *testing.T) {
		t.Parallel()

		dir, err := tenant.NewDirectory(testTenants())
		require.NoError(t, err)
		assert.Equal(t, 2, dir.Len())
	})

	t.Run("rejects entry without slug", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewDirectory([]tenant.Tenant{{OrgID: "org_1"}})
		assert.ErrorIs(t, err, tenant.ErrInvalidEntry)
	})

	t.Run("rejects entry without org id", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewDirectory([]tenant.Tenant{{Slug: "acme"}})
		assert.ErrorIs(t, err, tenant.ErrInvalidEntry)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewDirectory([]tenant.Tenant{
			{Slug: "acme", OrgID: "org_1"},
			{Slug: "acme", OrgID: "org_2"},
		})
		assert.ErrorIs(t, err, tenant.ErrDuplicateEntry)
	})

	t.Run("rejects duplicate org id", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewDirectory([]tenant.Tenant{
			{Slug: "acme", OrgID: "org_1"},
			{Slug: "other", OrgID: "org_1"},
		})
		assert.ErrorIs(t, err, tenant.ErrDuplicateEntry)
	})
}

func TestDirectoryLookups(t *testing.T) {
	t.Parallel()

	dir, err := tenant.NewDirectory(testTenants())
	require.NoError(t, err)

	t.Run("resolves by org id", func(t *testing.T) {
		t.Parallel()

		got, ok := dir.ByOrgID("org_01KHVPY7F02C9NRDYWD010RZP9")
		require.True(t, ok)
		assert.Equal(t, "foresound-srl", got.Slug)
	})

	t.Run("resolves by slug", func(t *testing.T) {
		t.Parallel()

		got, ok := dir.BySlug("kablee-srl")
		require.True(t, ok)
		assert.Equal(t, "org_01KJ9V64J25YSFA4RCKZ9FGPTC", got.OrgID)
	})

	t.Run("unknown keys return not found", func(t *testing.T) {
		t.Parallel()

		_, ok := dir.ByOrgID("org_unknown")
		assert.False(t, ok)

		_, ok = dir.BySlug("nope")
		assert.False(t, ok)
	})

	t.Run("lookups return incomplete tenants", func(t *testing.T) {
		t.Parallel()

		got, ok := dir.BySlug("kablee-srl")
		require.True(t, ok)
		assert.False(t, got.Configured())
	})
}

func TestDirectoryList(t *testing.T) {
	t.Parallel()

	dir, err := tenant.NewDirectory(testTenants())
	require.NoError(t, err)

	// kablee-srl has no project/team and must not be advertised.
	listed := dir.List()
	require.Len(t, listed, 1)
	assert.Equal(t, "foresound-srl", listed[0].Slug)
}
