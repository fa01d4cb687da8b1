package render

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

// RedirectWithFlash is the tail of every POST. The message is addressed to
// the path of location and the browser is sent there with a 303 so a reload
// does not resubmit.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	f := view.Flash{Kind: kind, Message: msg}
	if u, err := url.Parse(location); err == nil {
		f.Page = u.Path
	}
	middleware.SetFlashCookie(c, codec, f)
	c.Redirect(http.StatusSeeOther, location)
}
