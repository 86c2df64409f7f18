// Package handler contains the gateway's route handlers and router
// assembly. Handlers consume the tenant context attached by the admission
// middleware and call the boards service; they never deal with tokens or
// caching themselves.
package handler
