package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantListUnmarshalText(t *testing.T) {
	t.Parallel()

	t.Run("parses a JSON tenant array", func(t *testing.T) {
		t.Parallel()

		var l tenantList
		err := l.UnmarshalText([]byte(`[
			{"slug":"acme","org_id":"org_1","display_name":"Acme","project":"P","team":"T"},
			{"slug":"globex","org_id":"org_2","display_name":"Globex"}
		]`))
		require.NoError(t, err)
		require.Len(t, l, 2)
		assert.Equal(t, "acme", l[0].Slug)
		assert.Equal(t, "org_2", l[1].OrgID)
		assert.Empty(t, l[1].Project)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		var l tenantList
		assert.Error(t, l.UnmarshalText([]byte(`{"slug":"acme"}`)))
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cfg := appConfig{AppDomain: "Dashboard.Example.COM"}
	cfg.normalize()
	assert.Equal(t, "dashboard.example.com", cfg.AppDomain)
}
