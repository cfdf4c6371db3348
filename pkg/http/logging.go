package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/klwxsrx/go-web-auth/pkg/log"
)

type statusResponseWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.code = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// WithLogging writes one record per completed request, healthPath is never logged.
func WithLogging(logger log.Logger, excludedPaths ...string) ServerOption {
	excludedPaths = append(excludedPaths,
		healthPath,
	)

	isExcluded := func(path string) bool {
		for _, excludedPath := range excludedPaths {
			if excludedPath == path {
				return true
			}
		}
		return false
	}

	return WithMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExcluded(r.URL.Path) {
				handler.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			lrw := &statusResponseWriter{ResponseWriter: w, code: http.StatusOK}
			handler.ServeHTTP(lrw, r)

			logRequest(r, lrw, logger, time.Since(started))
		})
	})
}

func logRequest(r *http.Request, w *statusResponseWriter, logger log.Logger, duration time.Duration) {
	defer func() {
		_ = recover()
	}()

	logger.With(log.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status":      w.code,
		"userAgent":   userAgentToken(r.UserAgent()),
		"contentType": w.Header().Get(contentTypeHeader),
		"durationMs":  duration.Milliseconds(),
	}).Info(r.Context(), "request handled")
}

func userAgentToken(userAgent string) string {
	token, _, _ := strings.Cut(userAgent, " ")
	return token
}
