package http

import (
	"context"
	"net/http"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/service"
	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/pkg/auth"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

type sessionAuthProvider struct {
	resolver service.SessionResolver
}

func NewSessionAuthProvider(resolver service.SessionResolver) auth.Provider[service.Identity] {
	return sessionAuthProvider{resolver: resolver}
}

func (p sessionAuthProvider) Authenticate(ctx context.Context, token auth.Token) (auth.Result[service.Identity], error) {
	sessionToken := session.Token(token)
	resolution, err := p.resolver.Resolve(ctx, &sessionToken)
	if err != nil {
		return auth.Result[service.Identity]{}, err
	}

	return auth.Result[service.Identity]{
		Authentication: auth.Auth[service.Identity]{AuthPrincipal: resolution.Identity},
		RevokeToken:    resolution.ClearCookie,
	}, nil
}

func SessionTokenProvider(r *http.Request) (auth.Token, bool) {
	token := pkghttp.ParseRequestOptional(r, pkghttp.CookieValue[string](SessionCookieName), nil)
	if token == nil {
		return "", false
	}

	return auth.Token(*token), true
}

func currentIdentity(r *http.Request) *service.Identity {
	authentication, ok := auth.GetAuthentication[service.Identity](r.Context())
	if !ok {
		return nil
	}

	return authentication.Principal()
}
