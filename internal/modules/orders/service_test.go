package orders

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), nil, 0)
	err := svc.UpdateStatus(context.Background(), "o-1", "refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, called)
}

func TestUpdateStatusInvalidatesDashboard(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	mem := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "dashboard:stats", map[string]int{"x": 1}, time.Hour))
	require.NoError(t, mem.Set(ctx, "list:order", []Order{}, time.Hour))

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), mem, time.Hour)
	require.NoError(t, svc.UpdateStatus(ctx, "o-1", StatusShipped))
	assert.JSONEq(t, `{"status":"shipped"}`, body)

	var v any
	ok, _ := mem.Get(ctx, "dashboard:stats", &v)
	assert.False(t, ok)
	ok, _ = mem.Get(ctx, "list:order", &v)
	assert.False(t, ok)
}

func TestItemsNullIsEmpty(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), nil, 0)
	items, err := svc.Items(context.Background(), "o-7")
	require.NoError(t, err)
	assert.Equal(t, "/api/order-items/o-7", path)
	assert.Equal(t, []Item{}, items)
}

func TestSortByCreated(t *testing.T) {
	day := func(d int) nullable.Time { return nullable.Of(time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)) }
	items := []Order{
		{ID: "b", CreatedAt: day(2)},
		{ID: "none"},
		{ID: "c", CreatedAt: day(3)},
		{ID: "a", CreatedAt: day(1)},
	}

	SortByCreated(items, true)
	assert.Equal(t, []string{"c", "b", "a", "none"}, ids(items))

	SortByCreated(items, false)
	assert.Equal(t, []string{"a", "b", "c", "none"}, ids(items))
}

func ids(items []Order) []string {
	out := make([]string, 0, len(items))
	for _, o := range items {
		out = append(out, o.ID)
	}
	return out
}
