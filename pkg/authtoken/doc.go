// Package authtoken verifies bearer tokens issued by the identity provider
// and extracts the claims the gateway cares about.
//
// The gateway trusts tokens signed with keys published at the provider's
// JWKS endpoint. KeySet fetches and caches that key set in-process; the
// verifier only triggers verification against the cached set and never
// re-implements key management.
//
// # Usage
//
//	keys := authtoken.NewKeySet("https://api.workos.com/sso/jwks/client_123", nil)
//	verifier := authtoken.NewVerifier(keys)
//
//	claims, err := verifier.Verify(ctx, token)
//	switch {
//	case errors.Is(err, authtoken.ErrMissingOrganization):
//		// valid token, but not organization-scoped
//	case err != nil:
//		// malformed, bad signature, or expired
//	}
//
// Claims are modeled as a typed structure with explicitly optional fields
// rather than an open map; callers never reach into raw token payloads.
package authtoken
