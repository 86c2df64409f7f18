package authgate

import "errors"

var (
	// ErrMissingToken is returned when a protected request carries no usable
	// Authorization header.
	ErrMissingToken = errors.New("authgate: missing bearer token")

	// ErrUnknownOrganization is returned when a verified token asserts an
	// organization the tenant directory does not know.
	ErrUnknownOrganization = errors.New("authgate: unknown organization")

	// ErrTenantMismatch is returned when the request subdomain and the
	// token's organization resolve to different tenants.
	ErrTenantMismatch = errors.New("authgate: token organization does not match subdomain")
)
