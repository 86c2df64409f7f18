// Package requestid correlates gateway log lines by request.
//
// The middleware reuses a client-supplied X-Request-ID when it looks sane
// and mints a UUIDv4 otherwise, echoes the chosen ID in the response, and
// stores it in the request context. LoggerExtractor feeds the ID into the
// structured logger so every record emitted while serving a request carries
// the same request_id attribute.
package requestid
