package render

import (
	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/pages"
)

var _ middleware.ErrorPage = ErrorPage

// ErrorPage renders apperr failures for middleware.ErrorHandler.
func ErrorPage(c *gin.Context, status int, msg string, requestID string) {
	Component(c, status, pages.Error(view.ErrorPage{
		Layout:    Layout(c, "Error", ""),
		Status:    status,
		Message:   msg,
		RequestID: requestID,
	}))
}
