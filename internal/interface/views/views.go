// Package views holds the server-rendered admin pages.
package views

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var FS embed.FS

// Page names accepted by gin's c.HTML.
const (
	UserInfo     = "user-info.html"
	UserApproval = "user-approval.html"
	WardManager  = "ward-manager.html"
	Login        = "login.html"
	Dashboard    = "dashboard.html"
	ErrorPage    = "error.html"
)

func funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"pageURL": func(base string, page int) string {
			return base + "?page=" + strconv.Itoa(page)
		},
	}
}

// Parse parses every embedded page together with the shared layout blocks.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs()).ParseFS(FS, "templates/*.html")
}

// Install parses the pages and sets them as the engine's HTML renderer.
func Install(r *gin.Engine) error {
	t, err := Parse()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(t)
	return nil
}
