package render

import (
	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

// Layout builds the shared page chrome. active is the nav URL to highlight.
func Layout(c *gin.Context, title, active string) view.Layout {
	nav := []view.NavItem{{Label: "Dashboard", URL: "/admin", Active: active == "/admin"}}
	for _, k := range entity.Kinds() {
		s := entity.StrategyFor(k)
		nav = append(nav, view.NavItem{Label: s.Plural, URL: s.BasePath, Active: active == s.BasePath})
	}
	return view.Layout{Title: title, Nav: nav, Flash: middleware.GetFlash(c)}
}
