package utils

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP proxy ve load balancer arkasındaki gerçek client IP'sini bulur.
// Öncelik sırası: X-Forwarded-For zincirinin ilk adresi, X-Real-IP,
// CF-Connecting-IP, en son RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	// RemoteAddr "host:port" formatında gelir, IPv6 adresleri köşeli parantezli
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
