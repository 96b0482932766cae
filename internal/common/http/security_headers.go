package http

import (
	"net/http"
	"strings"
)

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
}

// Avatars are remote https images; the page script only talks to its own
// origin over the websocket.
var pageCSPDirectives = []string{
	"default-src 'self'",
	"script-src 'self' 'unsafe-inline'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data: https:",
	"connect-src 'self' ws: wss:",
	"form-action 'none'",
	"base-uri 'none'",
	"frame-ancestors 'none'",
}

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range securityHeaders {
			w.Header().Set(h[0], h[1])
		}
		next.ServeHTTP(w, r)
	})
}

func ContentSecurityPolicyMiddleware(csp string) func(http.Handler) http.Handler {
	if csp == "" {
		csp = strings.Join(pageCSPDirectives, "; ")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", csp)
			next.ServeHTTP(w, r)
		})
	}
}
