package handler

import (
	"net/http"
	"strings"

	"github.com/velais/sprintgate/pkg/subdomain"
	"github.com/velais/sprintgate/pkg/tenant"
)

const robotsBody = "User-agent: *\nDisallow: /\n"

// HostFilter is the outermost edge middleware: it serves a crawl-blocking
// robots.txt, lets health endpoints and known hosts through, and answers
// unknown subdomains with an unindexable 404 so tenant slugs cannot be
// probed via wildcard DNS.
func HostFilter(dir *tenant.Directory, appDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/robots.txt" {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.Header().Set("X-Robots-Tag", "noindex, nofollow")
				w.Header().Set("Cache-Control", "public, max-age=86400")
				_, _ = w.Write([]byte(robotsBody))
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/health") {
				next.ServeHTTP(w, r)
				return
			}

			slug := subdomain.Extract(r.Host, appDomain)
			if slug != "" {
				if _, known := dir.BySlug(slug); !known {
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.Header().Set("X-Robots-Tag", "noindex, nofollow")
					w.WriteHeader(http.StatusNotFound)
					_, _ = w.Write([]byte("Not Found"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
