// Package pages renders the admin console's HTML. Pages are html/template
// files embedded in the binary and exposed as templ components so handlers
// render them through the same render.Component path.
package pages

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

//go:embed *.html
var files embed.FS

var tmpl = template.Must(template.New("pages").Funcs(template.FuncMap{
	"preview": preview,
	"lower":   strings.ToLower,
}).ParseFS(files, "*.html"))

// preview marks an in-memory image data URL as safe for an img src.
// Anything else is dropped.
func preview(s string) template.URL {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s)
	}
	return ""
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

func List(p view.ListPage) templ.Component { return component("list", p) }

func Dashboard(p view.DashboardPage) templ.Component { return component("dashboard", p) }

func OrderDetail(p view.AdminOrderDetail) templ.Component { return component("order", p) }

func AssignCategories(p view.AdminAssignCategories) templ.Component {
	return component("assign", p)
}

func Error(p view.ErrorPage) templ.Component { return component("error", p) }
