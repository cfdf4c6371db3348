package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-web-auth/pkg/observability"
)

const RequestIDHeader = "X-Request-ID"

type RequestIDExtractor func(*http.Request) string

// WithObservability takes the request id from the first extractor returning a value and echoes it in RequestIDHeader.
func WithObservability(
	observer observability.Observer,
	extractors ...RequestIDExtractor,
) ServerOption {
	return WithMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, extractor := range extractors {
				if id := extractor(r); id != "" {
					r = r.WithContext(observer.WithRequestID(r.Context(), id))
					w.Header().Set(RequestIDHeader, id)
					break
				}
			}

			handler.ServeHTTP(w, r)
		})
	})
}

func RequestIDHeaderExtractor(header string) RequestIDExtractor {
	return func(r *http.Request) string {
		id := ParseRequestOptional(r, Header[string](header), nil)
		if id == nil {
			return ""
		}
		return *id
	}
}

func RequestIDRandomUUIDExtractor() RequestIDExtractor {
	return func(_ *http.Request) string {
		return uuid.NewString()
	}
}
