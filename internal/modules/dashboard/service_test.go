package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
)

func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"TotalSales":1200.5,"OrdersThisMonth":7,"SalesChange":-3.2}`))
	})
	mux.HandleFunc("/api/dashboard/recent-orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"ID":"o-1","Customer":"Alice","Date":{"Time":"2025-03-01T10:00:00Z","Valid":true},"Total":"19.99","Status":"pending"}]`))
	})
	mux.HandleFunc("/api/dashboard/sales-chart", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"salesLast6Months":[{"month":"Feb 2025","sales":219.98}],"ordersLast6Months":[{"month":"Feb 2025","orders":1}],"revenuePerProduct":[{"productName":"Cowboy Boots","revenue":359.98}]}`))
	})
	mux.HandleFunc("/api/dashboard/alerts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPanelsDecode(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), cache.NewMemory(), time.Minute)
	ctx := context.Background()

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1200.5, st.TotalSales)
	assert.Equal(t, -3.2, st.SalesChange)

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	recent, err := svc.RecentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "2025-03-01 10:00", recent[0].Date.Display())

	chart, err := svc.SalesChart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cowboy Boots", chart.RevenuePerProduct[0].ProductName)
	assert.Equal(t, 1.0, chart.OrdersLast6Months[0].Orders)

	_, err = svc.Alerts(ctx)
	assert.Equal(t, http.StatusBadGateway, apiclient.StatusOf(err))
}
