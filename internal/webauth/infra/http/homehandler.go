package http

import (
	"net/http"

	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
)

type HomeHandler struct {
	view *View
}

func NewHomeHandler(view *View) HomeHandler {
	return HomeHandler{view: view}
}

func (h HomeHandler) Method() string {
	return http.MethodGet
}

func (h HomeHandler) Path() string {
	return HomePath
}

func (h HomeHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	body, err := h.view.Render(pageHome, pageData{
		Title:    "Welcome",
		Identity: currentIdentity(r),
	})
	if err != nil {
		return err
	}

	w.SetHTMLBody(body)
	return nil
}
