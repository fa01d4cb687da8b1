package http

import (
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/handlers/admin"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/metrics"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/shared/apperr"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/static"
)

// Handlers are the admin pages, one per entity kind plus the dashboard.
type Handlers struct {
	Dashboard  *admin.DashboardHandler
	Products   *admin.ProductsHandler
	Categories *admin.CategoriesHandler
	Orders     *admin.OrdersHandler
	Customers  *admin.CustomersHandler
	Promotions *admin.PromotionsHandler
}

type RouterConfig struct {
	Logger  *slog.Logger
	Flash   *flash.Codec
	Metrics *metrics.Metrics
	// Limiter throttles writes; nil disables it.
	Limiter *middleware.RateLimiter
	// UploadsDir, when set, is served under UploadsPrefix (local storage).
	UploadsDir    string
	UploadsPrefix string
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.ErrorHandler(cfg.Logger, render.ErrorPage))
	r.Use(middleware.Recovery(cfg.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	r.StaticFS("/static", stdhttp.FS(static.FS))
	if cfg.UploadsDir != "" && cfg.UploadsPrefix != "" {
		r.Static(cfg.UploadsPrefix, cfg.UploadsDir)
	}
	r.GET("/", func(c *gin.Context) {
		c.Redirect(stdhttp.StatusFound, "/admin")
	})

	a := r.Group("/admin")
	a.Use(middleware.FlashMiddleware(cfg.Flash))
	a.Use(middleware.ForwardCredentials(cfg.Flash.CookieName))
	if cfg.Limiter != nil {
		a.Use(cfg.Limiter.Handler())
	}

	a.GET("", h.Dashboard.Show)

	p := a.Group("/products")
	p.GET("", h.Products.List)
	p.POST("", h.Products.Create)
	p.POST("/:id", h.Products.Update)
	p.POST("/:id/delete", h.Products.Delete)
	p.GET("/:id/categories", h.Products.CategoryPicker)
	p.POST("/:id/categories", h.Products.AssignCategories)

	cat := a.Group("/categories")
	cat.GET("", h.Categories.List)
	cat.POST("", h.Categories.Create)
	cat.POST("/:id", h.Categories.Update)
	cat.POST("/:id/delete", h.Categories.Delete)

	o := a.Group("/orders")
	o.GET("", h.Orders.List)
	o.GET("/:id", h.Orders.Detail)
	o.POST("/:id", h.Orders.Update)
	o.POST("/:id/delete", h.Orders.Delete)

	cu := a.Group("/customers")
	cu.GET("", h.Customers.List)
	cu.POST("", h.Customers.Create)
	cu.POST("/:id", h.Customers.Update)
	cu.POST("/:id/delete", h.Customers.Delete)

	pr := a.Group("/promotions")
	pr.GET("", h.Promotions.List)
	pr.POST("", h.Promotions.Create)
	pr.POST("/:id", h.Promotions.Update)
	pr.POST("/:id/delete", h.Promotions.Delete)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})
	return r
}
