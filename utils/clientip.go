package utils

import (
	"net"
	"strings"
)

// proxyIPHeaders in precedence order: CDN first, then load balancer,
// then reverse proxy, then generic proxy.
var proxyIPHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"Client-IP",
}

// ClientIP resolves the requester's address for diagnostics. Proxy headers
// are consulted in precedence order; a value from a proxy header is only
// trusted if it parses and is publicly routable. The raw socket address is
// the fallback and is accepted even when private (local deployments).
func ClientIP(header func(string) string, remoteAddr string) string {
	for _, h := range proxyIPHeaders {
		v := strings.TrimSpace(header(h))
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			// first entry is the original client
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
		}
		if ip := net.ParseIP(v); ip != nil && isPublicIP(ip) {
			return ip.String()
		}
	}

	addr := remoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String()
	}
	return addr
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsPrivate() ||
		ip.IsLoopback() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast())
}
