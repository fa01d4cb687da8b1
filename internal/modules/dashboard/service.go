// Package dashboard reads the summary panels shown on the admin home page.
package dashboard

import (
	"context"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
)

const basePath = "/api/dashboard"

var (
	alertsKey       = cache.Key("dashboard", "alerts")
	recentOrdersKey = cache.Key("dashboard", "recent-orders")
	statsKey        = cache.Key("dashboard", "stats")
	topProductsKey  = cache.Key("dashboard", "top-products")
	salesChartKey   = cache.Key("dashboard", "sales-chart")
)

// OrderKeys are the panels that change when an order changes.
var OrderKeys = []string{recentOrdersKey, statsKey, topProductsKey, salesChartKey}

type Service struct {
	api   apiclient.API
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{api: api, cache: c, ttl: ttl}
}

func (s *Service) Alerts(ctx context.Context) ([]Notification, error) {
	return load[[]Notification](ctx, s, alertsKey, "dashboard.alerts", "/alerts")
}

func (s *Service) RecentOrders(ctx context.Context) ([]RecentOrder, error) {
	return load[[]RecentOrder](ctx, s, recentOrdersKey, "dashboard.recent_orders", "/recent-orders")
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return load[Stats](ctx, s, statsKey, "dashboard.stats", "/stats")
}

func (s *Service) TopProducts(ctx context.Context) ([]ProductSales, error) {
	return load[[]ProductSales](ctx, s, topProductsKey, "dashboard.top_products", "/top-products")
}

func (s *Service) SalesChart(ctx context.Context) (SalesChart, error) {
	return load[SalesChart](ctx, s, salesChartKey, "dashboard.sales_chart", "/sales-chart")
}

func load[T any](ctx context.Context, s *Service, key, op, path string) (T, error) {
	return cache.Load(ctx, s.cache, key, s.ttl, func(ctx context.Context) (T, error) {
		var out T
		err := s.api.Get(ctx, op, basePath+path, &out)
		return out, err
	})
}
