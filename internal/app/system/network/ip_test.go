package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		realIP string
		remote string
		want   string
	}{
		{"forwarded single hop", "203.0.113.9", "", "10.0.0.1:5123", "203.0.113.9"},
		{"forwarded chain uses first hop", "203.0.113.9, 10.0.0.2, 172.16.0.1", "", "10.0.0.1:5123", "203.0.113.9"},
		{"forwarded garbage falls through", "unknown", "", "10.0.0.1:5123", "10.0.0.1"},
		{"real ip header", "", "198.51.100.4", "10.0.0.1:5123", "198.51.100.4"},
		{"forwarded beats real ip", "203.0.113.9", "198.51.100.4", "10.0.0.1:5123", "203.0.113.9"},
		{"remote with port", "", "", "198.51.100.4:443", "198.51.100.4"},
		{"remote without port", "", "", "198.51.100.4", "198.51.100.4"},
		{"remote ipv6", "", "", "[2001:db8::1]:8080", "2001:db8::1"},
		{"ipv4-mapped ipv6 unwrapped", "::ffff:203.0.113.9", "", "10.0.0.1:5123", "203.0.113.9"},
		{"nothing parseable", "", "", "@unix-socket", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
