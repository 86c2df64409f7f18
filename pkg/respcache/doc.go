// Package respcache caches successful GET responses per tenant for a short
// TTL, with conditional-request (ETag) support and a bounded in-memory
// store.
//
// The upstream board API is slow and rate-limited, so identical reporting
// queries within a few minutes are served from memory. Entries are keyed by
// tenant slug, path, and query string; tenants never share entries. The
// store favors availability over retention: when full, expired entries are
// swept, and if that frees nothing the whole store is cleared rather than
// tracking per-entry recency.
//
// # Usage
//
//	r.Use(respcache.Middleware(
//		respcache.WithTTL(10*time.Minute),
//		respcache.WithMaxEntries(500),
//	))
//
// Responses gain an X-Cache: HIT|MISS diagnostic header, an ETag
// fingerprint, and a private Cache-Control directive. Concurrent misses for
// the same key are not deduplicated; redundant upstream calls are accepted
// because downstream handlers are idempotent and side-effect free.
package respcache
