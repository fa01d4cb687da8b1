package categories

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
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

func TestDeleteInvalidatesList(t *testing.T) {
	var lists, deletes atomic.Int32
	var deletedPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/categories":
			lists.Add(1)
			_, _ = w.Write([]byte(`[{"ID":"c-1","Name":"Boots","Slug":"boots","Description":{"String":"","Valid":false}}]`))
		case r.Method == http.MethodDelete:
			deletes.Add(1)
			deletedPath.Store(r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), cache.NewMemory(), time.Hour)
	ctx := context.Background()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Description.Valid)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, lists.Load())

	require.NoError(t, svc.Delete(ctx, "c-1"))
	assert.EqualValues(t, 1, deletes.Load())
	assert.Equal(t, "/api/categories/c-1", deletedPath.Load())

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, lists.Load())
}

func TestFailedDeleteKeepsCache(t *testing.T) {
	var lists atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			lists.Add(1)
			_, _ = w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), cache.NewMemory(), time.Hour)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	require.Error(t, svc.Delete(ctx, "c-1"))
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, lists.Load())
}

func TestCreateSendsMultipart(t *testing.T) {
	got := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		if fh := r.MultipartForm.File["image"]; len(fh) == 1 {
			fields["image"] = fh[0].Filename
		}
		got <- fields
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ID":"c-9"}`))
	}))
	defer srv.Close()

	svc := NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), nil, 0)
	err := svc.Create(context.Background(), Input{
		Name:             "Kids",
		Slug:             "kids",
		IsGenderSpecific: true,
		Description:      "Small boots",
		ParentID:         nullable.Of("c-1"),
		Image:            &Image{Filename: "kids.png", ContentType: "image/png", Data: []byte{1}},
	})
	require.NoError(t, err)

	fields := <-got
	assert.Equal(t, map[string]string{
		"name":             "Kids",
		"slug":             "kids",
		"isGenderSpecific": "true",
		"description":      "Small boots",
		"parentID":         "c-1",
		"image":            "kids.png",
	}, fields)
}

func TestParentsExcludesSelf(t *testing.T) {
	items := []Category{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := Parents(items, "b")
	assert.Equal(t, []Category{{ID: "a"}, {ID: "c"}}, got)
}
