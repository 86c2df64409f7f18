package authgate

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/velais/sprintgate/pkg/authtoken"
)

// ErrorHandler turns an admission failure into an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	skipPrefixes []string
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithSkipPrefixes sets path prefixes admitted without a token, typically
// health checks and the auth-issuance routes themselves.
func WithSkipPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.skipPrefixes = append(c.skipPrefixes, prefixes...)
	}
}

// WithErrorHandler sets a custom rejection writer.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets the audit logger for admission decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// defaultErrorHandler writes intentionally generic bodies: the status code
// distinguishes 401 from 403, nothing else about token validation or tenant
// existence is disclosed.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, authtoken.ErrInvalidToken),
		errors.Is(err, authtoken.ErrKeySetUnavailable):
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, authtoken.ErrMissingOrganization),
		errors.Is(err, ErrUnknownOrganization),
		errors.Is(err, ErrTenantMismatch):
		writeJSONError(w, http.StatusForbidden, "Forbidden")
	default:
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
