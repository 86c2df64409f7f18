// Package tenant holds the gateway's static tenant directory and the
// request-scoped tenant context.
//
// Tenants are organizations with isolated reporting data, identified two
// ways: by the opaque organization ID asserted in auth tokens, and by the
// human-facing subdomain slug they are served on. The Directory is built
// once at startup from static configuration and is immutable afterwards, so
// request-time lookups need no locking.
//
// # Usage
//
//	dir, err := tenant.NewDirectory([]tenant.Tenant{...})
//	if err != nil {
//		// duplicate slug or org ID in configuration
//	}
//
//	t, ok := dir.ByOrgID("org_01ABC...")
//	t, ok = dir.BySlug("acme")
//
// The admission middleware attaches a Context to each authenticated request;
// handlers retrieve it with FromContext or MustFromContext.
package tenant
