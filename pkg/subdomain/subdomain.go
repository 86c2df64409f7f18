package subdomain

import "strings"

// devWildcardDomain is a loopback wildcard domain (every *.lvh.me name
// resolves to 127.0.0.1), which lets local development exercise
// subdomain-based tenancy without DNS changes.
const devWildcardDomain = ".lvh.me"

// Extract returns the tenant slug implied by host, or the empty string when
// the host carries no usable subdomain.
//
// The host may include a port, which is ignored. Reserved local hostnames
// ("localhost", "127.0.0.1") never imply a tenant. Hosts under the
// development wildcard domain return their leading label verbatim. Any other
// host must be a direct child of baseDomain: exactly one extra label, not
// "www", and not empty.
func Extract(host, baseDomain string) string {
	hostname := host
	if idx := strings.LastIndex(hostname, ":"); idx != -1 {
		hostname = hostname[:idx]
	}
	if hostname == "" {
		return ""
	}

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return ""
	}

	if strings.HasSuffix(hostname, devWildcardDomain) {
		return hostname[:len(hostname)-len(devWildcardDomain)]
	}

	if !strings.HasSuffix(hostname, "."+baseDomain) {
		return ""
	}

	sub := hostname[:len(hostname)-len(baseDomain)-1]

	// Reject the bare www alias and multi-level subdomains; both would
	// otherwise be mistaken for tenant slugs.
	if sub == "" || sub == "www" || strings.Contains(sub, ".") {
		return ""
	}

	return sub
}
