package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/klwxsrx/go-web-auth/pkg/apperror"
)

const (
	DefaultServerAddress = ":8080"

	defaultReadTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

type (
	// ServerOption configures middlewares wrapping every request, unmatched routes included.
	ServerOption func(*server)

	// RouteOption configures middlewares of matched routes.
	RouteOption func(*route)

	Middleware func(http.Handler) http.Handler
)

type HandlerRegistry interface {
	Register(handler Handler, opts ...RouteOption)
	Use(opts ...RouteOption)
}

type Server interface {
	http.Handler
	HandlerRegistry
	Listener(context.Context) error
}

type route struct {
	middlewares []Middleware
}

func (r *route) wrap(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	return handler
}

type server struct {
	srv         *http.Server
	router      *mux.Router
	middlewares []Middleware
	handler     http.Handler
}

func NewServer(
	address string,
	errorHandler ErrorHandler,
	opts ...ServerOption,
) Server {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFoundHandler)

	s := &server{
		router: router,
	}
	for _, opt := range opts {
		opt(s)
	}

	var handler = withPanicRecovery(router)
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	s.handler = withHandlerMetadata(errorHandler)(handler)

	s.srv = &http.Server{
		Addr:              address,
		Handler:           s,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *server) Listener(ctx context.Context) error {
	shutdown := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
		defer cancel()

		err := s.srv.Shutdown(shutdownCtx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}

	serverDoneChan := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serverDoneChan <- err
	}()

	var err error
	select {
	case err = <-serverDoneChan:
	case <-ctx.Done():
		err = shutdown()
	}
	if err != nil {
		return fmt.Errorf("http listener %s: %w", s.srv.Addr, err)
	}

	return nil
}

func (s *server) Register(handler Handler, opts ...RouteOption) {
	r := &route{}
	for _, opt := range opts {
		opt(r)
	}

	s.router.
		Name(getRouteName(handler.Method(), handler.Path())).
		Methods(handler.Method()).
		Path(handler.Path()).
		Handler(r.wrap(httpHandlerWrapper(handler)))
}

// Use applies route options to every matched route, registered before or after the call.
func (s *server) Use(opts ...RouteOption) {
	r := &route{}
	for _, opt := range opts {
		opt(r)
	}

	for _, mw := range r.middlewares {
		s.router.Use(mux.MiddlewareFunc(mw))
	}
}

func WithMiddleware(mw Middleware) ServerOption {
	return func(s *server) {
		s.middlewares = append(s.middlewares, mw)
	}
}

func WithRouteMiddleware(mw Middleware) RouteOption {
	return func(r *route) {
		r.middlewares = append(r.middlewares, mw)
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, apperror.NotFound("Page Not Found"))
}
