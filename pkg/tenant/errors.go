package tenant

import "errors"

var (
	// ErrInvalidEntry is returned when a tenant entry is missing its slug or org ID.
	ErrInvalidEntry = errors.New("tenant: invalid directory entry")

	// ErrDuplicateEntry is returned when two entries share a slug or org ID.
	ErrDuplicateEntry = errors.New("tenant: duplicate directory entry")

	// ErrNoContext is returned when no tenant context is present on the request.
	ErrNoContext = errors.New("tenant: no tenant in context")
)
