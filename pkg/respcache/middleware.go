package respcache

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/velais/sprintgate/pkg/tenant"
)

// globalScope keys responses served without a tenant context, such as
// allow-listed public routes that still benefit from caching.
const globalScope = "global"

// Middleware caches successful GET responses. Non-GET requests pass
// through untouched. It must run after the admission middleware so the
// tenant context is available for key scoping.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := cfg.store
	if store == nil {
		store = NewStore(cfg.maxEntries, cfg.ttl)
	}
	maxAge := strconv.Itoa(int(store.TTL().Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			for _, prefix := range cfg.skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key := cacheKey(r)

			if entry, ok := store.Get(key); ok {
				hitsTotal.Inc()
				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("ETag", entry.ETag)

				if r.Header.Get("If-None-Match") == entry.ETag {
					w.WriteHeader(http.StatusNotModified)
					return
				}

				w.Header().Set("Cache-Control", "private, max-age="+maxAge)
				if entry.ContentType != "" {
					w.Header().Set("Content-Type", entry.ContentType)
				}
				_, _ = w.Write(entry.Body)
				return
			}

			missesTotal.Inc()

			rec := &captureWriter{header: make(http.Header)}
			next.ServeHTTP(rec, r)

			// Only complete, successful responses are cacheable. Upstream
			// failures and error statuses pass through verbatim.
			if rec.status == http.StatusOK {
				etag := fingerprint(rec.body.Bytes())
				store.Set(key, Entry{
					Body:        bytes.Clone(rec.body.Bytes()),
					ETag:        etag,
					ContentType: rec.header.Get("Content-Type"),
					CreatedAt:   store.now(),
				})
				rec.header.Set("X-Cache", "MISS")
				rec.header.Set("ETag", etag)
				rec.header.Set("Cache-Control", "private, max-age="+maxAge)
			}

			rec.flush(w)
		})
	}
}

// cacheKey scopes an entry to one tenant's view of one resource.
func cacheKey(r *http.Request) string {
	scope := globalScope
	if slug, ok := tenant.SlugFromContext(r.Context()); ok {
		scope = slug
	}
	return scope + ":" + r.URL.Path + ":" + r.URL.RawQuery
}

// fingerprint derives the ETag: a fast non-cryptographic hash truncated to
// 16 hex characters. Collisions only cause a spurious cache revalidation,
// so cryptographic strength is not needed.
func fingerprint(body []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(body))
}

// captureWriter buffers the downstream response so it can be fingerprinted
// and stored before anything reaches the client.
type captureWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (c *captureWriter) Header() http.Header {
	return c.header
}

func (c *captureWriter) WriteHeader(status int) {
	if c.status == 0 {
		c.status = status
	}
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	return c.body.Write(p)
}

// flush replays the captured response onto the real writer.
func (c *captureWriter) flush(w http.ResponseWriter) {
	for key, values := range c.header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(c.body.Bytes())
}
