package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

const CtxKeyFlash = "flash"

// FlashMiddleware hands the pending flash to the page it was meant for and
// clears the cookie, so a message is shown exactly once. A flash addressed
// to another page is left for that page. Unreadable or expired cookies are
// cleared straight away.
func FlashMiddleware(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(codec.CookieName); err == nil && v != "" {
			f, err := codec.Decode(v)
			switch {
			case err != nil:
				clearCookie(c, codec.CookieName, codec.Secure)
			case f.For(c.Request.URL.Path):
				c.Set(CtxKeyFlash, f)
				clearCookie(c, codec.CookieName, codec.Secure)
			}
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	if v, ok := c.Get(CtxKeyFlash); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}

func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	val, err := codec.Encode(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, codec.CookieMaxAge(), "/", "", codec.Secure, true)
}

func clearCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
