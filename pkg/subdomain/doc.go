// Package subdomain extracts tenant slugs from HTTP Host headers.
//
// The gateway serves each tenant on its own subdomain of a configured base
// domain (e.g. "acme" from "acme.dashboard.example.com"). This package
// contains the pure host-parsing logic shared by the admission middleware
// and the edge host filter.
//
// # Usage
//
//	slug := subdomain.Extract(r.Host, "dashboard.example.com")
//	if slug == "" {
//		// apex domain, local host, or foreign host — no tenant implied
//	}
//
// Extraction is purely lexical: no DNS lookups, no I/O. The base domain is
// expected to be pre-lowercased by configuration; matching is case-sensitive.
package subdomain
