package http

import "net/http"

const hstsHeaderValue = "max-age=31536000; includeSubDomains"

// WithSecurityHeaders sets Strict-Transport-Security only in production.
func WithSecurityHeaders(production bool) ServerOption {
	return WithMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := w.Header()
			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "DENY")
			header.Set("X-XSS-Protection", "1; mode=block")
			header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if production {
				header.Set("Strict-Transport-Security", hstsHeaderValue)
			}

			handler.ServeHTTP(w, r)
		})
	})
}
