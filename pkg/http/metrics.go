package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/klwxsrx/go-web-auth/pkg/metric"
)

func WithMetrics(metrics metric.Metrics) ServerOption {
	return WithMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, code: http.StatusOK}
			handler.ServeHTTP(srw, r)

			if getHandlerMetadata(r.Context()).Panic != nil {
				metrics.Increment("http_request_panics_total",
					"method", r.Method,
					"path", r.URL.Path,
				)
			}

			metrics.Duration("http_request_duration_seconds", time.Since(started),
				"method", r.Method,
				"path", r.URL.Path,
				"code", strconv.Itoa(srw.code),
			)
		})
	})
}
