package products

import (
	"context"
	"encoding/json"
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

func TestListAppliesDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"ID":"p-1","Name":"","CategoryName":"","Stock":{"Int32":4,"Valid":true}},
			{"ID":"p-2","Name":"Boot","CategoryName":"Men","Weight":{"String":"2kg","Valid":true}}
		]`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), cache.NewMemory(), time.Minute)
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, UnnamedProduct, items[0].Name)
	assert.Equal(t, Uncategorized, items[0].CategoryName)
	assert.Equal(t, int32(4), items[0].Stock.OrZero())
	assert.False(t, items[0].Weight.Valid)
	assert.Equal(t, "2kg", items[1].Weight.Display())

	assert.Equal(t, []string{Uncategorized, "Men"}, CategoryNames(items))

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNullListIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), nil, 0)
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUpdateSendsJSON(t *testing.T) {
	got := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body["_method"] = r.Method
		body["_path"] = r.URL.Path
		got <- body
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), nil, 0)
	err := svc.Update(context.Background(), "p-1", UpdateInput{
		Name: "Boot", BasePrice: "10.00", CurrentPrice: "9.50",
		Description: "Leather", Stock: 12, Weight: "1kg", ImageURL: "https://cdn.example.com/b.png",
	})
	require.NoError(t, err)

	body := <-got
	assert.Equal(t, http.MethodPut, body["_method"])
	assert.Equal(t, "/api/products/p-1", body["_path"])
	assert.Equal(t, "9.50", body["currentPrice"])
	assert.EqualValues(t, 12, body["stock"])
	assert.Equal(t, "https://cdn.example.com/b.png", body["imageUrl"])
}

func TestAssignCategoriesInvalidatesBothLists(t *testing.T) {
	var path string
	var body assignCategoriesBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mem := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "list:product", []Product{}, time.Hour))
	require.NoError(t, mem.Set(ctx, "list:category", []string{}, time.Hour))

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), mem, time.Hour)
	require.NoError(t, svc.AssignCategories(ctx, "p-1", nil))

	assert.Equal(t, "/api/products/categories/p-1", path)
	assert.Equal(t, []string{}, body.CategoryIDs)

	var v any
	ok, _ := mem.Get(ctx, "list:product", &v)
	assert.False(t, ok)
	ok, _ = mem.Get(ctx, "list:category", &v)
	assert.False(t, ok)
}

func TestWarmCacheIsNotSharedAcrossSessions(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if ck, err := r.Cookie("session"); err != nil || ck.Value != "admin-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"ID":"p-1","Name":"Secret Boot"}]`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), cache.NewMemory(), time.Hour)
	admin := apiclient.WithCookies(context.Background(), []*http.Cookie{{Name: "session", Value: "admin-1"}})

	items, err := svc.List(admin)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.List(admin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	_, err = svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusOf(err))

	other := apiclient.WithCookies(context.Background(), []*http.Cookie{{Name: "session", Value: "stale"}})
	_, err = svc.List(other)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusOf(err))
	assert.EqualValues(t, 3, calls.Load())
}
