package middleware

import (
	"net"
	"net/http"
)

// ClientIP returns the host part of r.RemoteAddr. Forwarding headers are
// ignored because they are client controlled.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
