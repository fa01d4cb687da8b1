package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/config"
	apphttp "github.com/DiegoGarciaCo/Ecom-Admin/internal/http"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/handlers/admin"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/metrics"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/customers"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/dashboard"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("config_load_failed", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	images, err := storage.New(ctx, storage.Config{
		Driver:    cfg.Storage.Driver,
		LocalDir:  cfg.Storage.LocalDir,
		URLPrefix: cfg.Storage.URLPrefix,
		S3: storage.S3Config{
			Region:        cfg.Storage.S3.Region,
			Bucket:        cfg.Storage.S3.Bucket,
			Prefix:        cfg.Storage.S3.Prefix,
			PublicBaseURL: cfg.Storage.S3.PublicBaseURL,
			Endpoint:      cfg.Storage.S3.Endpoint,
		},
	})
	if err != nil {
		return err
	}

	m := metrics.New()
	api := apiclient.New(apiclient.Config{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		Logger:   logger,
		Observer: m,
	})

	ttl := cfg.Cache.TTL
	productSvc := products.NewService(api, pageCache, ttl)
	categorySvc := categories.NewService(api, pageCache, ttl)
	orderSvc := orders.NewService(api, pageCache, ttl)
	customerSvc := customers.NewService(api, pageCache, ttl)
	promotionSvc := promotions.NewService(api, pageCache, ttl)
	dashboardSvc := dashboard.NewService(api, pageCache, ttl)

	secret := []byte(cfg.Flash.Secret)
	if len(secret) == 0 {
		// flashes from before a restart become unreadable, which is harmless
		logger.Warn("flash_secret_missing", "hint", "set ECOM_ADMIN_FLASH_SECRET")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return err
		}
	}
	base := admin.Base{
		Flash:  flash.NewCodec(secret, "admin_flash", cfg.Flash.Secure),
		Logger: logger,
	}

	rc := apphttp.RouterConfig{
		Logger:  logger,
		Flash:   base.Flash,
		Metrics: m,
		Limiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger),
	}
	if local, ok := images.(*storage.Local); ok {
		rc.UploadsDir, rc.UploadsPrefix = local.BaseDir, local.MountPath()
	}

	gin.SetMode(gin.ReleaseMode)
	router := apphttp.NewRouter(rc, apphttp.Handlers{
		Dashboard:  admin.NewDashboardHandler(base, dashboardSvc),
		Products:   admin.NewProductsHandler(base, productSvc, categorySvc, images),
		Categories: admin.NewCategoriesHandler(base, categorySvc),
		Orders:     admin.NewOrdersHandler(base, orderSvc),
		Customers:  admin.NewCustomersHandler(base, customerSvc, orderSvc),
		Promotions: admin.NewPromotionsHandler(base, promotionSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", cfg.HTTP.Addr, "api", cfg.API.BaseURL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemory(), func() {}, nil
	}
	r, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, err
	}
	return r, func() { _ = r.Close() }, nil
}
