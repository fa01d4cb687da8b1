package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
)

// ForwardCredentials puts the browser's cookies on the request context so
// every shop API call made while serving it carries the admin's session.
// Cookies named in skip (the console's own) are not forwarded.
func ForwardCredentials(skip ...string) gin.HandlerFunc {
	drop := make(map[string]bool, len(skip))
	for _, name := range skip {
		drop[name] = true
	}
	return func(c *gin.Context) {
		cookies := c.Request.Cookies()
		kept := cookies[:0:0]
		for _, ck := range cookies {
			if !drop[ck.Name] {
				kept = append(kept, ck)
			}
		}
		if len(kept) > 0 {
			c.Request = c.Request.WithContext(apiclient.WithCookies(c.Request.Context(), kept))
		}
		c.Next()
	}
}
