package http

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	healthPath = "/healthz"

	healthStatusOK          = "OK"
	healthStatusUnavailable = "UNAVAILABLE"
)

// HealthCheck reports whether a dependency of the service is reachable.
type HealthCheck func(context.Context) error

// WithHealthCheck serves healthPath, any failed check turns the response into 503.
func WithHealthCheck(checks ...HealthCheck) ServerOption {
	handler := func(w http.ResponseWriter, r *http.Request) {
		status, code := healthStatusOK, http.StatusOK
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				status, code = healthStatusUnavailable, http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set(contentTypeHeader, contentTypeJSON)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(struct {
			Status string `json:"status"`
		}{
			Status: status,
		})
	}

	return func(srv *server) {
		srv.router.
			Name(getRouteName(http.MethodGet, healthPath)).
			Methods(http.MethodGet).
			Path(healthPath).
			HandlerFunc(handler)
	}
}
