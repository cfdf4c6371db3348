package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/service"
)

const (
	pageHome      = "home"
	pageRegister  = "register"
	pageLogin     = "login"
	pageDashboard = "dashboard"
)

//go:embed templates/*.html
var templateFiles embed.FS

type (
	View struct {
		pages map[string]*template.Template
	}

	pageData struct {
		Title       string
		Identity    *service.Identity
		Form        formData
		Error       string
		FieldErrors service.ValidationErrors
	}

	formData struct {
		Name  string
		Email string
	}
)

func NewView() (*View, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{pageHome, pageRegister, pageLogin, pageDashboard} {
		tpl, err := template.New(page).Funcs(template.FuncMap{
			"formatDate": formatDate,
		}).ParseFS(templateFiles, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page template: %w", page, err)
		}

		pages[page] = tpl
	}

	return &View{pages: pages}, nil
}

func (v *View) Render(page string, data pageData) ([]byte, error) {
	tpl, ok := v.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %s", page)
	}

	buf := &bytes.Buffer{}
	err := tpl.ExecuteTemplate(buf, "layout", data)
	if err != nil {
		return nil, fmt.Errorf("render %s page: %w", page, err)
	}

	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
