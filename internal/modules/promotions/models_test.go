package promotions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
)

const sample = `[
 {"id":"p1","name":"SPRING20","description":"20% off spring collection","discountPercentage":"20.00","discountAmount":null,"bundlePrice":null,"productId":null,"categoryId":"c1","startDate":"2025-03-01T00:00:00Z","endDate":"2025-03-31T23:59:59Z","isActive":true,"categoryName":"Men"},
 {"id":"p2","name":"FLASH10","description":"$10 off select boots","discountPercentage":null,"discountAmount":"10.00","bundlePrice":null,"productId":"1","categoryId":null,"startDate":"2025-03-06T00:00:00Z","endDate":"2025-03-07T23:59:59Z","isActive":false},
 {"id":"p3","name":"BUNDLE50","description":"Bundle deal for kids","bundlePrice":"50.00","startDate":"2025-03-01T00:00:00Z","endDate":"2025-03-15T23:59:59Z","isActive":true}
]`

func TestDecodeCamelCase(t *testing.T) {
	var items []Promotion
	require.NoError(t, json.Unmarshal([]byte(sample), &items))
	require.Len(t, items, 3)

	assert.Equal(t, Percentage, items[0].Type())
	assert.Equal(t, "20.00%", items[0].Discount())
	assert.Equal(t, "Men", items[0].CategoryName.Display())
	assert.Equal(t, "N/A", items[0].ProductName.Display())

	assert.Equal(t, Fixed, items[1].Type())
	assert.Equal(t, "$10.00", items[1].Discount())

	assert.Equal(t, Bundle, items[2].Type())
	assert.Equal(t, "Bundle: $50.00", items[2].Discount())
}

func TestStatus(t *testing.T) {
	p := Promotion{
		IsActive:  true,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Active", p.Status(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Inactive", p.Status(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)))
	p.IsActive = false
	assert.Equal(t, "Expired", p.Status(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestCreateSendsSnakeCaseWithNulls(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got <- string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	mem := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "list:promotion", []Promotion{}, time.Hour))

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), mem, time.Hour)
	pct := "15.00"
	require.NoError(t, svc.Create(ctx, Input{
		Name:               "SUMMER15",
		Description:        "Summer",
		DiscountPercentage: &pct,
		StartDate:          "2025-06-01",
		EndDate:            "2025-06-30",
		IsActive:           true,
	}))

	assert.JSONEq(t, `{
		"name":"SUMMER15","description":"Summer",
		"discount_percentage":"15.00","discount_amount":null,"bundle_price":null,
		"product_id":null,"category_id":null,
		"start_date":"2025-06-01","end_date":"2025-06-30","is_active":true
	}`, <-got)

	var v any
	ok, _ := mem.Get(ctx, "list:promotion", &v)
	assert.False(t, ok)
}
