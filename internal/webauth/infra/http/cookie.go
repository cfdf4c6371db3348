package http

import (
	"net/http"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
)

const SessionCookieName = "auth"

// CookiePolicy builds the session cookie, Secure is set only in production so plain http works locally.
type CookiePolicy struct {
	Production bool
}

func (p CookiePolicy) Active(token session.Token) *http.Cookie {
	cookie := p.cookie()
	cookie.Value = string(token)
	cookie.MaxAge = int(session.TTL.Seconds())
	return cookie
}

// Expired makes the browser drop the session cookie, it is sent as Max-Age=0.
func (p CookiePolicy) Expired() *http.Cookie {
	cookie := p.cookie()
	cookie.MaxAge = -1
	return cookie
}

func (p CookiePolicy) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Production,
		SameSite: http.SameSiteLaxMode,
	}
}
