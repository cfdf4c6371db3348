package http

import (
	"context"
	"net/http"
)

type contextKey int

const (
	handlerMetaContextKey contextKey = iota
)

type handlerMetadata struct {
	ErrorHandler   ErrorHandler
	PendingCookies []*http.Cookie
	Panic          any
}

func withHandlerMetadata(errorHandler ErrorHandler) Middleware {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), handlerMetaContextKey, &handlerMetadata{
				ErrorHandler: errorHandler,
			})
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getHandlerMetadata(ctx context.Context) *handlerMetadata {
	meta, ok := ctx.Value(handlerMetaContextKey).(*handlerMetadata)
	if ok {
		return meta
	}
	return &handlerMetadata{}
}

// addPendingCookie schedules a cookie for any response the request ends with, handler cookies of the same name take precedence.
func addPendingCookie(ctx context.Context, cookie *http.Cookie) {
	meta := getHandlerMetadata(ctx)
	meta.PendingCookies = append(meta.PendingCookies, cookie)
}

func writePendingCookies(w http.ResponseWriter, r *http.Request, overridden map[string]struct{}) {
	for _, cookie := range getHandlerMetadata(r.Context()).PendingCookies {
		if _, ok := overridden[cookie.Name]; ok {
			continue
		}
		http.SetCookie(w, cookie)
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	writePendingCookies(w, r, nil)

	errorHandler := getHandlerMetadata(r.Context()).ErrorHandler
	if errorHandler == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	errorHandler.Handle(w, r, err)
}
