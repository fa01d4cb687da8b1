package render

import (
	"log/slog"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// Component writes comp as the HTML response. Templates render into the
// response directly, so a failure mid-page is only logged.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		slog.Default().LogAttrs(c.Request.Context(), slog.LevelError, "render_failed",
			slog.String("path", c.Request.URL.Path),
			slog.Any("err", err),
		)
	}
}
