package authtoken

import "errors"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures, and expired
	// tokens. The distinction is logged server-side but never exposed to
	// clients.
	ErrInvalidToken = errors.New("authtoken: invalid token")

	// ErrMissingOrganization is returned for an otherwise-valid token that
	// carries no organization claim. Callers map this to 403 rather than 401.
	ErrMissingOrganization = errors.New("authtoken: no organization in token")

	// ErrKeyNotFound is returned when the token references a signing key the
	// published key set does not contain.
	ErrKeyNotFound = errors.New("authtoken: signing key not found")

	// ErrKeySetUnavailable is returned when the remote key set cannot be
	// fetched or parsed.
	ErrKeySetUnavailable = errors.New("authtoken: key set unavailable")
)
