package http

import (
	"net/http"

	"github.com/klwxsrx/go-web-auth/pkg/auth"
)

type AuthTokenProvider func(*http.Request) (auth.Token, bool)

// WithAuth resolves the request authentication once per request, requests without a token are anonymous.
// A provider failure leaves the request anonymous and revokes the token.
// When the token is revoked, revokedTokenCookie is sent with whatever response the request ends with.
func WithAuth[T auth.Principal](
	provider auth.Provider[T],
	revokedTokenCookie func() *http.Cookie,
	tokenProviders ...AuthTokenProvider,
) RouteOption {
	return WithRouteMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			var token auth.Token
			for _, tokenProvider := range tokenProviders {
				token, ok = tokenProvider(r)
				if ok {
					break
				}
			}
			if !ok {
				r = r.WithContext(auth.WithAuthentication[T](r.Context(), auth.Auth[T]{}))
				handler.ServeHTTP(w, r)
				return
			}

			result, err := provider.Authenticate(r.Context(), token)
			if err != nil {
				result = auth.Result[T]{RevokeToken: true}
			}
			if result.RevokeToken && revokedTokenCookie != nil {
				addPendingCookie(r.Context(), revokedTokenCookie())
			}

			var authentication auth.Authentication[T] = auth.Auth[T]{}
			if result.Authentication != nil {
				authentication = result.Authentication
			}

			r = r.WithContext(auth.WithAuthentication[T](r.Context(), authentication))
			handler.ServeHTTP(w, r)
		})
	})
}

// WithAuthenticationRequirement redirects anonymous requests to redirectPath,
// an empty redirectPath fails them with auth.ErrUnauthenticated instead.
func WithAuthenticationRequirement(redirectPath string) RouteOption {
	return WithRouteMiddleware(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAuthenticated, err := auth.IsAuthenticated(r.Context())
			if err != nil {
				handleError(w, r, err)
				return
			}

			if isAuthenticated {
				handler.ServeHTTP(w, r)
				return
			}

			if redirectPath == "" {
				handleError(w, r, auth.ErrUnauthenticated)
				return
			}

			writePendingCookies(w, r, nil)
			http.Redirect(w, r, redirectPath, http.StatusFound)
		})
	})
}
