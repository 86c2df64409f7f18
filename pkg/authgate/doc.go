// Package authgate is the gateway's request-admission middleware.
//
// Every protected request passes a single decision that composes three
// independent signals: the bearer token's verified organization claim, the
// static tenant directory, and the subdomain the request arrived on. A
// token for tenant A replayed against tenant B's subdomain is rejected even
// though the token itself is valid.
//
// # Decision order
//
//  1. Allow-listed path prefixes are admitted without a token.
//  2. Missing or malformed Authorization header → 401.
//  3. Signature/expiry failure → 401 (verifier internals never leak).
//  4. Valid token without an organization claim → 403.
//  5. Organization unknown to the directory → 403.
//  6. Subdomain present and different from the tenant's slug → 403.
//     No subdomain (apex domain, plain localhost) passes this check.
//
// Admitted requests carry a tenant.Context for downstream handlers. Every
// failure is terminal with no side effects beyond the response; rejection
// bodies are deliberately generic while the audit detail goes to the log.
package authgate
