package http

import (
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/handlers/admin"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/metrics"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/customers"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/dashboard"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	client := apiclient.New(apiclient.Config{BaseURL: upstream.URL, Logger: logger, Observer: m})
	mem := cache.NewMemory()
	b := admin.Base{Flash: flash.NewCodec([]byte("secret"), "admin_flash", false), Logger: logger}

	prods := products.NewService(client, mem, time.Minute)
	cats := categories.NewService(client, mem, time.Minute)
	ords := orders.NewService(client, mem, time.Minute)

	h := Handlers{
		Dashboard:  admin.NewDashboardHandler(b, dashboard.NewService(client, mem, time.Minute)),
		Products:   admin.NewProductsHandler(b, prods, cats, storage.NewLocal(t.TempDir(), "http://localhost:8080/uploads")),
		Categories: admin.NewCategoriesHandler(b, cats),
		Orders:     admin.NewOrdersHandler(b, ords),
		Customers:  admin.NewCustomersHandler(b, customers.NewService(client, mem, time.Minute), ords),
		Promotions: admin.NewPromotionsHandler(b, promotions.NewService(client, mem, time.Minute)),
	}
	return NewRouter(RouterConfig{Logger: logger, Flash: b.Flash, Metrics: m}, h)
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := serve(newTestRouter(t), stdhttp.MethodGet, "/healthz")
	assert.Equal(t, stdhttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRootRedirectsToDashboard(t *testing.T) {
	w := serve(newTestRouter(t), stdhttp.MethodGet, "/")
	assert.Equal(t, stdhttp.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	w := serve(newTestRouter(t), stdhttp.MethodGet, "/admin/nope")
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestStaticAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, stdhttp.MethodGet, "/static/admin.css")
	assert.Equal(t, stdhttp.StatusOK, w.Code)

	require.Equal(t, stdhttp.StatusOK, serve(r, stdhttp.MethodGet, "/admin/products").Code)

	w = serve(r, stdhttp.MethodGet, "/metrics")
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ecom_admin_upstream_")
}
