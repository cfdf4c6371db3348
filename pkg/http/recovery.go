package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/klwxsrx/go-web-auth/pkg/apperror"
)

// withPanicRecovery classifies panics of route middlewares and handlers as unknown errors.
func withPanicRecovery(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			msg := recover()
			if msg == nil {
				return
			}
			if err, ok := msg.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(msg)
			}

			getHandlerMetadata(r.Context()).Panic = msg
			handleError(w, r, apperror.Unknown(fmt.Errorf("panic: %v", msg)))
		}()

		handler.ServeHTTP(w, r)
	})
}
