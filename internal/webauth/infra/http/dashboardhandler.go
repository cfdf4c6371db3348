package http

import (
	"net/http"

	"github.com/klwxsrx/go-web-auth/pkg/auth"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

// DashboardHandler expects an authenticated request, register it behind pkghttp.WithAuthenticationRequirement.
type DashboardHandler struct {
	view *View
}

func NewDashboardHandler(view *View) DashboardHandler {
	return DashboardHandler{view: view}
}

func (h DashboardHandler) Method() string {
	return http.MethodGet
}

func (h DashboardHandler) Path() string {
	return DashboardPath
}

func (h DashboardHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	identity := currentIdentity(r)
	if identity == nil {
		return auth.ErrUnauthenticated
	}

	body, err := h.view.Render(pageDashboard, pageData{
		Title:    "Dashboard",
		Identity: identity,
	})
	if err != nil {
		return err
	}

	w.SetHTMLBody(body)
	return nil
}
