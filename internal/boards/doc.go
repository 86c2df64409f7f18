// Package boards fetches sprint data from the upstream work-tracking API
// and aggregates it into the report shapes the dashboard consumes.
//
// The client is a thin REST wrapper: current-iteration lookup, a WIQL query
// for the iteration's work-item IDs, and batched detail fetches. Failures
// surface as ErrUpstream so handlers can map them to 502 responses, which
// the response cache never stores.
package boards
