// Package network resolves the client address behind the reverse proxy.
package network

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP returns the caller's address. The first X-Forwarded-For hop wins,
// then X-Real-IP, then RemoteAddr. Values that are not an IP are skipped, so
// the result is a canonical address or "".
func ClientIP(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	candidates := []string{first, r.Header.Get("X-Real-IP"), hostOnly(r.RemoteAddr)}
	for _, c := range candidates {
		if ip, ok := canonical(c); ok {
			return ip
		}
	}
	return ""
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// canonical parses s as an IPv4 or IPv6 address, unwrapping IPv4-mapped IPv6.
func canonical(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return "", false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}
