package http

import (
	"net/http"

	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

type LogoutHandler struct {
	cookiePolicy CookiePolicy
}

func NewLogoutHandler(cookiePolicy CookiePolicy) LogoutHandler {
	return LogoutHandler{cookiePolicy: cookiePolicy}
}

func (h LogoutHandler) Method() string {
	return http.MethodPost
}

func (h LogoutHandler) Path() string {
	return LogoutPath
}

func (h LogoutHandler) Handle(w pkghttp.ResponseWriter, _ *http.Request) error {
	w.SetCookie(h.cookiePolicy.Expired())
	w.Redirect(HomePath)
	return nil
}
