package respcache

import (
	"log/slog"
	"time"
)

const (
	// DefaultTTL matches the upstream board API's practical staleness
	// tolerance for sprint reporting.
	DefaultTTL = 10 * time.Minute

	// DefaultMaxEntries bounds cache memory. With typical response sizes in
	// the tens of kilobytes this keeps the store under a few dozen MB.
	DefaultMaxEntries = 500
)

// config holds middleware configuration.
type config struct {
	ttl          time.Duration
	maxEntries   int
	store        *Store
	logger       *slog.Logger
	skipPrefixes []string
}

// Option configures the middleware.
type Option func(*config)

// WithTTL sets how long cached responses stay fresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxEntries sets the store's size bound.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithStore supplies a pre-built store, e.g. one shared with an
// operational flush endpoint.
func WithStore(s *Store) Option {
	return func(c *config) {
		if s != nil {
			c.store = s
		}
	}
}

// WithSkipPrefixes excludes path prefixes from caching, e.g. health
// probes whose whole point is a fresh answer.
func WithSkipPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.skipPrefixes = append(c.skipPrefixes, prefixes...)
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
