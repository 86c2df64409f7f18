package authgate

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/velais/sprintgate/pkg/authtoken"
	"github.com/velais/sprintgate/pkg/clientip"
	"github.com/velais/sprintgate/pkg/subdomain"
	"github.com/velais/sprintgate/pkg/tenant"
)

// Middleware creates the admission middleware. It requires the immutable
// tenant directory, a token verifier, and the base application domain used
// for subdomain cross-validation.
func Middleware(dir *tenant.Directory, verifier authtoken.Verifier, baseDomain string, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			token, err := bearerToken(r)
			if err != nil {
				reject(cfg, w, r, err, "missing_token")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				reject(cfg, w, r, err, "verify_failed")
				return
			}

			resolved, ok := dir.ByOrgID(claims.OrgID)
			if !ok {
				reject(cfg, w, r, fmt.Errorf("%w: %s", ErrUnknownOrganization, claims.OrgID), "unknown_org",
					slog.String("org_id", claims.OrgID))
				return
			}

			// A token for one tenant must not be replayable against another
			// tenant's subdomain. A request without any subdomain (apex
			// domain, plain localhost) carries no slug to contradict the
			// token and passes.
			slug := subdomain.Extract(r.Host, baseDomain)
			if slug != "" && slug != resolved.Slug {
				reject(cfg, w, r, fmt.Errorf("%w: host slug %q, token tenant %q", ErrTenantMismatch, slug, resolved.Slug), "tenant_mismatch",
					slog.String("attempted_slug", slug),
					slog.String("resolved_tenant", resolved.Slug))
				return
			}

			userID := claims.Subject
			if userID == "" {
				userID = "unknown"
			}

			ctx := tenant.WithContext(r.Context(), tenant.Context{
				Tenant: resolved,
				UserID: userID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(cfg *config, w http.ResponseWriter, r *http.Request, err error, reason string, attrs ...slog.Attr) {
	attrs = append(attrs,
		slog.String("reason", reason),
		slog.String("host", r.Host),
		slog.String("path", r.URL.Path),
		slog.String("client_ip", clientip.GetIP(r)),
		slog.Any("error", err),
	)
	cfg.logger.LogAttrs(r.Context(), slog.LevelWarn, "request rejected", attrs...)
	rejectionsTotal.WithLabelValues(reason).Inc()
	cfg.errorHandler(w, r, err)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
