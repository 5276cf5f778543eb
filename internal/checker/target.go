package checker

import (
	"net/url"
	"strings"
)

// ParseTarget extracts the bare hostname and a normalized URL from whatever
// the operator typed. Accepted forms:
//   - example.com
//   - http://example.com
//   - https://example.com:443/path
//   - example.com:8080
func ParseTarget(target string) (host, fullURL string) {
	target = strings.TrimSpace(target)

	parsed, err := url.Parse(target)
	// A bare "example.com:8080" parses with scheme "example.com", and a bare
	// domain parses with no scheme at all; both need a scheme prepended.
	if err != nil || parsed.Scheme == "" || strings.Contains(parsed.Scheme, ".") {
		parsed, _ = url.Parse("http://" + target)
	}
	if parsed != nil && parsed.Hostname() != "" {
		return parsed.Hostname(), parsed.String()
	}

	// Last resort: strip protocol, path and port by hand.
	host = strings.TrimPrefix(target, "http://")
	host = strings.TrimPrefix(host, "https://")
	host = strings.Split(host, "/")[0]
	host = strings.Split(host, ":")[0]
	return host, "http://" + host
}

// ExtractHost extracts just the hostname from a target, for DNS lookups.
func ExtractHost(target string) string {
	host, _ := ParseTarget(target)
	return host
}
