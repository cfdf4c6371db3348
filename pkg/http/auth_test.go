package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-web-auth/pkg/auth"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

const tokenCookieName = "auth"

type principal struct {
	id string
}

func (p principal) ID() string {
	return p.id
}

type providerFunc func(context.Context, auth.Token) (auth.Result[principal], error)

func (f providerFunc) Authenticate(ctx context.Context, token auth.Token) (auth.Result[principal], error) {
	return f(ctx, token)
}

func cookieTokenProvider(r *http.Request) (auth.Token, bool) {
	value := pkghttp.ParseRequestOptional(r, pkghttp.CookieValue[string](tokenCookieName), nil)
	if value == nil {
		return "", false
	}
	return auth.Token(*value), true
}

func revokedCookie() *http.Cookie {
	return &http.Cookie{Name: tokenCookieName, Value: "", Path: "/", MaxAge: -1}
}

func newAuthServer(provider auth.Provider[principal]) pkghttp.Server {
	srv := newTestServer(false)
	srv.Use(pkghttp.WithAuth[principal](provider, revokedCookie, cookieTokenProvider))
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/public",
		handle: func(w pkghttp.ResponseWriter, r *http.Request) error {
			authentication, ok := auth.GetAuthentication[principal](r.Context())
			if !ok {
				return errors.New("authentication not resolved")
			}
			if authentication.IsAuthenticated() {
				w.SetHTMLBody([]byte("user " + authentication.Principal().ID()))
			} else {
				w.SetHTMLBody([]byte("anonymous"))
			}
			return nil
		},
	})
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/private",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetHTMLBody([]byte("secret"))
			return nil
		},
	}, pkghttp.WithAuthenticationRequirement("/login"))
	srv.Register(testHandler{
		method: http.MethodGet,
		path:   "/api/private",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetJSONBody("secret")
			return nil
		},
	}, pkghttp.WithAuthenticationRequirement(""))
	srv.Register(testHandler{
		method: http.MethodPost,
		path:   "/login",
		handle: func(w pkghttp.ResponseWriter, _ *http.Request) error {
			w.SetCookie(&http.Cookie{Name: tokenCookieName, Value: "fresh", Path: "/"}).Redirect("/private")
			return nil
		},
	})

	return srv
}

func TestWithAuth_WithoutTokenDoesNotCallProvider(t *testing.T) {
	srv := newAuthServer(providerFunc(func(context.Context, auth.Token) (auth.Result[principal], error) {
		t.Fatal("provider must not be called")
		return auth.Result[principal]{}, nil
	}))

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/public", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestWithAuth_AuthenticatesByToken(t *testing.T) {
	srv := newAuthServer(providerFunc(func(_ context.Context, token auth.Token) (auth.Result[principal], error) {
		assert.Equal(t, auth.Token("valid"), token)
		return auth.Result[principal]{Authentication: auth.Auth[principal]{AuthPrincipal: &principal{id: "42"}}}, nil
	}))

	r := httptest.NewRequest(http.MethodGet, "/public", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "valid"})
	w := serve(srv, r)

	assert.Equal(t, "user 42", w.Body.String())

	r = httptest.NewRequest(http.MethodGet, "/private", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "valid"})
	w = serve(srv, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestWithAuth_RevokesRejectedToken(t *testing.T) {
	srv := newAuthServer(providerFunc(func(context.Context, auth.Token) (auth.Result[principal], error) {
		return auth.Result[principal]{RevokeToken: true}, nil
	}))

	r := httptest.NewRequest(http.MethodGet, "/public", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "forged"})
	w := serve(srv, r)

	assert.Equal(t, "anonymous", w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, tokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)

	r = httptest.NewRequest(http.MethodGet, "/private", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "forged"})
	w = serve(srv, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	require.Len(t, w.Result().Cookies(), 1)
	assert.Empty(t, w.Result().Cookies()[0].Value)
}

func TestWithAuth_HandlerCookieOverridesRevocation(t *testing.T) {
	srv := newAuthServer(providerFunc(func(context.Context, auth.Token) (auth.Result[principal], error) {
		return auth.Result[principal]{RevokeToken: true}, nil
	}))

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "expired"})
	w := serve(srv, r)

	assert.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh", cookies[0].Value)
}

func TestWithAuth_ProviderErrorFallsBackToAnonymous(t *testing.T) {
	srv := newAuthServer(providerFunc(func(context.Context, auth.Token) (auth.Result[principal], error) {
		return auth.Result[principal]{}, errors.New("store is down")
	}))

	r := httptest.NewRequest(http.MethodGet, "/public", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "valid"})
	w := serve(srv, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, tokenCookieName, w.Result().Cookies()[0].Name)
	assert.Empty(t, w.Result().Cookies()[0].Value)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	r = httptest.NewRequest(http.MethodGet, "/private", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "valid"})
	w = serve(srv, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestWithAuthenticationRequirement_RejectsAnonymous(t *testing.T) {
	srv := newAuthServer(providerFunc(func(context.Context, auth.Token) (auth.Result[principal], error) {
		return auth.Result[principal]{}, nil
	}))

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "secret")

	r := httptest.NewRequest(http.MethodGet, "/api/private", nil)
	r.Header.Set("Accept", "application/json")
	w = serve(srv, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTHENTICATION_ERROR", decodeErrorBody(t, w).Error.Code)
}
