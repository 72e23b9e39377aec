package server

import (
	"net/http"
	"strings"
)

// SecurityConfig holds the security-related settings of the HTTP server:
// CORS policy and input size limits.
type SecurityConfig struct {
	// EnableCORS enables cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS ("*" for any).
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods allowed by CORS.
	AllowedMethods []string
	// MaxPostsValue caps the posts parameter accepted by the count endpoint.
	MaxPostsValue uint64
	// MaxColorsValue caps the colors parameter accepted by the count endpoint.
	MaxColorsValue uint64
}

// DefaultSecurityConfig returns the security settings used when none are
// provided explicitly.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxPostsValue:  1_000_000_000,
		MaxColorsValue: 1_000_000_000,
	}
}

// SecurityMiddleware wraps a handler with standard security headers and the
// configured CORS policy. OPTIONS preflight requests are answered directly
// with 204 No Content.
//
// Parameters:
//   - config: The security configuration to apply.
//   - next: The handler to wrap.
//
// Returns:
//   - http.HandlerFunc: The wrapped handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Standard hardening headers, set on every response.
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := matchOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// matchOrigin returns the CORS origin value to send back, or "" when the
// request origin is not allowed. A wildcard entry matches any request,
// including those without an Origin header.
func matchOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
