package tenant

import "fmt"

// Tenant is one organization served by the gateway. Slug is the subdomain
// the tenant is reached on; OrgID is the organization identifier asserted by
// the identity provider in auth tokens. Project and Team route requests to
// the tenant's sprint board upstream.
type Tenant struct {
	Slug        string `json:"slug"`
	OrgID       string `json:"org_id"`
	DisplayName string `json:"display_name"`
	Project     string `json:"project"`
	Team        string `json:"team"`
}

// Configured reports whether the tenant has the routing attributes required
// to reach its upstream board. Lookups still return unconfigured tenants;
// callers that need routing must check this themselves.
func (t Tenant) Configured() bool {
	return t.Project != "" && t.Team != ""
}

// Directory is an immutable two-way index over the configured tenants.
// It is built once at startup and safe for concurrent use without locking.
type Directory struct {
	byOrgID map[string]Tenant
	bySlug  map[string]Tenant
	ordered []Tenant
}

// NewDirectory builds a Directory from the static tenant list. Slugs and org
// IDs must each be unique and non-empty; a violation is a configuration bug
// and fails construction.
func NewDirectory(tenants []Tenant) (*Directory, error) {
	d := &Directory{
		byOrgID: make(map[string]Tenant, len(tenants)),
		bySlug:  make(map[string]Tenant, len(tenants)),
		ordered: make([]Tenant, 0, len(tenants)),
	}

	for _, t := range tenants {
		if t.Slug == "" || t.OrgID == "" {
			return nil, fmt.Errorf("%w: slug=%q org_id=%q", ErrInvalidEntry, t.Slug, t.OrgID)
		}
		if _, exists := d.bySlug[t.Slug]; exists {
			return nil, fmt.Errorf("%w: slug %q", ErrDuplicateEntry, t.Slug)
		}
		if _, exists := d.byOrgID[t.OrgID]; exists {
			return nil, fmt.Errorf("%w: org_id %q", ErrDuplicateEntry, t.OrgID)
		}
		d.bySlug[t.Slug] = t
		d.byOrgID[t.OrgID] = t
		d.ordered = append(d.ordered, t)
	}

	return d, nil
}

// ByOrgID returns the tenant for the given organization ID.
func (d *Directory) ByOrgID(orgID string) (Tenant, bool) {
	t, ok := d.byOrgID[orgID]
	return t, ok
}

// BySlug returns the tenant for the given subdomain slug.
func (d *Directory) BySlug(slug string) (Tenant, bool) {
	t, ok := d.bySlug[slug]
	return t, ok
}

// List returns the fully-configured tenants in configuration order.
// Entries missing routing attributes are filtered out; they are reachable
// via ByOrgID/BySlug but should not be advertised.
func (d *Directory) List() []Tenant {
	out := make([]Tenant, 0, len(d.ordered))
	for _, t := range d.ordered {
		if t.Configured() {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of configured entries, complete or not.
func (d *Directory) Len() int {
	return len(d.ordered)
}
