package http

import (
	"errors"
	"net/http"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/service"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

type RegisterPageHandler struct {
	view *View
}

func NewRegisterPageHandler(view *View) RegisterPageHandler {
	return RegisterPageHandler{view: view}
}

func (h RegisterPageHandler) Method() string {
	return http.MethodGet
}

func (h RegisterPageHandler) Path() string {
	return RegisterPath
}

func (h RegisterPageHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	identity := currentIdentity(r)
	if identity != nil {
		w.Redirect(DashboardPath)
		return nil
	}

	return renderRegisterPage(h.view, w, http.StatusOK, pageData{})
}

type RegisterHandler struct {
	authService  service.Authentication
	cookiePolicy CookiePolicy
	view         *View
}

func NewRegisterHandler(
	authService service.Authentication,
	cookiePolicy CookiePolicy,
	view *View,
) RegisterHandler {
	return RegisterHandler{
		authService:  authService,
		cookiePolicy: cookiePolicy,
		view:         view,
	}
}

func (h RegisterHandler) Method() string {
	return http.MethodPost
}

func (h RegisterHandler) Path() string {
	return RegisterPath
}

func (h RegisterHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	form, err := pkghttp.ParseRequest(r, pkghttp.PostForm(), nil)
	if err != nil {
		return err
	}

	in := service.Registration{
		Name:     form.Get("name"),
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}
	data := pageData{Form: formData{Name: in.Name, Email: in.Email}}

	token, err := h.authService.Register(r.Context(), in)
	var validationErrs service.ValidationErrors
	if errors.As(err, &validationErrs) {
		data.Error = messageInvalidForm
		data.FieldErrors = validationErrs
		return renderRegisterPage(h.view, w, http.StatusBadRequest, data)
	}
	if errors.Is(err, service.ErrEmailTaken) {
		data.Error = messageEmailTaken
		return renderRegisterPage(h.view, w, http.StatusOK, data)
	}
	if err != nil {
		return err
	}

	w.SetCookie(h.cookiePolicy.Active(token.Token))
	w.Redirect(DashboardPath)
	return nil
}

func renderRegisterPage(view *View, w pkghttp.ResponseWriter, statusCode int, data pageData) error {
	data.Title = "Register"
	body, err := view.Render(pageRegister, data)
	if err != nil {
		return err
	}

	w.SetHTMLBody(body)
	w.SetStatusCode(statusCode)
	return nil
}
