package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-web-auth/pkg/apperror"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
	"github.com/klwxsrx/go-web-auth/pkg/log"
	"github.com/klwxsrx/go-web-auth/pkg/observability"
)

type testHandler struct {
	method string
	path   string
	handle func(w pkghttp.ResponseWriter, r *http.Request) error
}

func (h testHandler) Method() string {
	return h.method
}

func (h testHandler) Path() string {
	return h.path
}

func (h testHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	return h.handle(w, r)
}

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
		Timestamp string `json:"timestamp"`
		Stack     string `json:"stack"`
		Details   string `json:"details"`
	} `json:"error"`
}

func newTestServer(production bool, opts ...pkghttp.ServerOption) pkghttp.Server {
	logger := log.New(log.LevelDisabled)
	errorHandler := pkghttp.NewErrorHandler(logger, observability.New(), production)
	return pkghttp.NewServer(pkghttp.DefaultServerAddress, errorHandler, opts...)
}

func serve(srv http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestServer_UnmatchedRouteReturnsNotFoundJSON(t *testing.T) {
	srv := newTestServer(false)

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.Header.Set("Accept", "application/json")
	w := serve(srv, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeErrorBody(t, w)
	assert.Equal(t, "NOT_FOUND_ERROR", body.Error.Code)
	assert.NotEmpty(t, body.Error.RequestID)
	assert.NotEmpty(t, body.Error.Timestamp)
}

func TestServer_UnmatchedRouteReturnsNotFoundPage(t *testing.T) {
	srv := newTestServer(true)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "404")
	assert.Contains(t, w.Body.String(), "Go Home")
	assert.NotContains(t, w.Body.String(), "<details>")
}

func TestServer_MethodMismatchReturnsNotFound(t *testing.T) {
	srv := newTestServer(false)
	srv.Register(testHandler{
		method: http.MethodPost,
		path:   "/logout",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.Redirect("/")
			return nil
		},
	})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_HandlerResponse(t *testing.T) {
	srv := newTestServer(false)
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/ok",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetCookie(&http.Cookie{Name: "a", Value: "b"}).
				SetStatusCode(http.StatusCreated).
				SetJSONBody(map[string]string{"status": "created"})
			return nil
		},
	})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"created"}`, w.Body.String())
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "b", w.Result().Cookies()[0].Value)
}

func TestServer_HandlerErrorDiscardsResponse(t *testing.T) {
	srv := newTestServer(true)
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/fail",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetCookie(&http.Cookie{Name: "a", Value: "b"})
			return errors.New("db password is hunter2")
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/fail", nil)
	r.Header.Set("Accept", "application/json")
	w := serve(srv, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.NotContains(t, w.Body.String(), "hunter2")

	body := decodeErrorBody(t, w)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
	assert.Empty(t, body.Error.Stack)
	assert.Empty(t, body.Error.Details)
}

func TestServer_HandlerPanicIsClassifiedAsUnknown(t *testing.T) {
	srv := newTestServer(false)
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/panic",
		handle: func(_ pkghttp.ResponseWriter, _ *http.Request) error {
			panic("unexpected")
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.Header.Set("Accept", "application/json")
	w := serve(srv, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.NotEmpty(t, body.Error.Stack)
	assert.Contains(t, body.Error.Details, "unexpected")
}

func TestServer_ClassifiedErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.Validation("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"parsing", pkghttp.ErrParsingError, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"authentication", apperror.Authentication("who are you"), http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"authorization", apperror.Authorization("not yours"), http.StatusForbidden, "AUTHORIZATION_ERROR"},
		{"explicit_status", apperror.Validation("slow down").WithStatusCode(http.StatusTooManyRequests), http.StatusTooManyRequests, "VALIDATION_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(false)
			srv.Register(testHandler{
				method: http.MethodGet,
				path:   "/err",
				handle: func(_ pkghttp.ResponseWriter, _ *http.Request) error {
					return tc.err
				},
			})

			r := httptest.NewRequest(http.MethodGet, "/err", nil)
			r.Header.Set("Accept", "application/json, text/plain")
			w := serve(srv, r)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeErrorBody(t, w).Error.Code)
		})
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	errTeapot := errors.New("teapot")
	logger := log.New(log.LevelDisabled)
	errorHandler := pkghttp.NewErrorHandler(logger, observability.New(), false,
		pkghttp.WithErrorMapping(apperror.KindValidation, errTeapot),
	)
	srv := pkghttp.NewServer(pkghttp.DefaultServerAddress, errorHandler)
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/tea",
		handle: func(_ pkghttp.ResponseWriter, _ *http.Request) error {
			return errTeapot
		},
	})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/tea", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "<details>"))
}

func TestServer_RequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(false,
		pkghttp.WithObservability(observability.New(), pkghttp.RequestIDHeaderExtractor(pkghttp.RequestIDHeader)),
	)

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.Header.Set("Accept", "application/json")
	r.Header.Set(pkghttp.RequestIDHeader, "request-1")
	w := serve(srv, r)

	assert.Equal(t, "request-1", w.Header().Get(pkghttp.RequestIDHeader))
	assert.Equal(t, "request-1", decodeErrorBody(t, w).Error.RequestID)
}

func TestServer_SecurityHeaders(t *testing.T) {
	for _, production := range []bool{false, true} {
		srv := newTestServer(production, pkghttp.WithSecurityHeaders(production), pkghttp.WithHealthCheck())

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, production, w.Header().Get("Strict-Transport-Security") != "")
	}
}

func TestServer_MiddlewarePanicIsClassifiedAsUnknown(t *testing.T) {
	srv := newTestServer(false)
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/guarded",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetHTMLBody([]byte("unreachable"))
			return nil
		},
	}, pkghttp.WithRouteMiddleware(func(http.Handler) http.Handler {
		return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("store exploded")
		})
	}))

	r := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.Header.Set("Accept", "application/json")
	w := serve(srv, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "unreachable")
	body := decodeErrorBody(t, w)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
	assert.Contains(t, body.Error.Details, "store exploded")
	assert.NotEmpty(t, body.Error.Stack)
}

func TestServer_ErrorTimestampUsesClock(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("UTC+3", 3*60*60))
	errorHandler := pkghttp.NewErrorHandler(log.New(log.LevelDisabled), observability.New(), false,
		pkghttp.WithErrorHandlerClock(func() time.Time { return now }),
	)
	srv := pkghttp.NewServer(pkghttp.DefaultServerAddress, errorHandler)

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.Header.Set("Accept", "application/json")
	w := serve(srv, r)

	assert.Equal(t, "2024-05-06T04:08:09Z", decodeErrorBody(t, w).Error.Timestamp)
}

func TestServer_HealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		checks []pkghttp.HealthCheck
		status int
		body   string
	}{
		{
			name:   "without_checks",
			status: http.StatusOK,
			body:   `{"status":"OK"}`,
		},
		{
			name: "checks_pass",
			checks: []pkghttp.HealthCheck{
				func(context.Context) error { return nil },
			},
			status: http.StatusOK,
			body:   `{"status":"OK"}`,
		},
		{
			name: "check_fails",
			checks: []pkghttp.HealthCheck{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("connection refused") },
			},
			status: http.StatusServiceUnavailable,
			body:   `{"status":"UNAVAILABLE"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(false, pkghttp.WithHealthCheck(tc.checks...))

			w := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
