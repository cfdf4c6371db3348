package http

import (
	"errors"
	"net/http"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/service"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

type LoginPageHandler struct {
	view *View
}

func NewLoginPageHandler(view *View) LoginPageHandler {
	return LoginPageHandler{view: view}
}

func (h LoginPageHandler) Method() string {
	return http.MethodGet
}

func (h LoginPageHandler) Path() string {
	return LoginPath
}

func (h LoginPageHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	if currentIdentity(r) != nil {
		w.Redirect(DashboardPath)
		return nil
	}

	return renderLoginPage(h.view, w, pageData{})
}

type LoginHandler struct {
	authService  service.Authentication
	cookiePolicy CookiePolicy
	view         *View
}

func NewLoginHandler(
	authService service.Authentication,
	cookiePolicy CookiePolicy,
	view *View,
) LoginHandler {
	return LoginHandler{
		authService:  authService,
		cookiePolicy: cookiePolicy,
		view:         view,
	}
}

func (h LoginHandler) Method() string {
	return http.MethodPost
}

func (h LoginHandler) Path() string {
	return LoginPath
}

func (h LoginHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	form, err := pkghttp.ParseRequest(r, pkghttp.PostForm(), nil)
	if err != nil {
		return err
	}

	in := service.Credentials{
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}

	token, err := h.authService.Login(r.Context(), in)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return renderLoginPage(h.view, w, pageData{
			Form:  formData{Email: in.Email},
			Error: messageInvalidCredentials,
		})
	}
	if err != nil {
		return err
	}

	w.SetCookie(h.cookiePolicy.Active(token.Token))
	w.Redirect(DashboardPath)
	return nil
}

func renderLoginPage(view *View, w pkghttp.ResponseWriter, data pageData) error {
	data.Title = "Login"
	body, err := view.Render(pageLogin, data)
	if err != nil {
		return err
	}

	w.SetHTMLBody(body)
	return nil
}
