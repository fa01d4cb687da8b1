package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveUpstream(op string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op)
}

func TestDeleteNoContent(t *testing.T) {
	var gotMethod, gotPath, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(Config{BaseURL: srv.URL + "/", Observer: obs})
	ctx := WithCookies(context.Background(), []*http.Cookie{{Name: "session", Value: "abc"}})

	err := c.Delete(ctx, "categories.delete", PathID("/api/categories", "c-1"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/categories/c-1", gotPath)
	assert.Equal(t, "abc", gotCookie)
	assert.Equal(t, []string{"categories.delete"}, obs.calls)
}

func TestGetDecodesAndToleratesNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			_, _ = w.Write([]byte("null"))
		default:
			_ = json.NewEncoder(w).Encode([]map[string]string{{"ID": "1"}})
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	var rows []map[string]string
	require.NoError(t, c.Get(context.Background(), "x", "/api/products", &rows))
	assert.Len(t, rows, 1)

	var none []map[string]string
	require.NoError(t, c.Get(context.Background(), "x", "/api/users", &none))
	assert.Nil(t, none)
}

func TestNon2xxBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"slug already exists"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	err := c.Send(context.Background(), "categories.update", http.MethodPut, "/api/categories/1", map[string]string{"a": "b"}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "slug already exists", apiErr.Message)
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.False(t, IsNotFound(err))
}

func TestSendMultipart(t *testing.T) {
	type seen struct {
		name   string
		images []string
		ctype  string
	}
	got := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s := seen{name: r.FormValue("name")}
		for _, fh := range r.MultipartForm.File["image"] {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			b, _ := io.ReadAll(f)
			_ = f.Close()
			s.images = append(s.images, fh.Filename+":"+string(b))
			s.ctype = fh.Header.Get("Content-Type")
		}
		got <- s
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ID":"p-1"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	var out struct{ ID string }
	err := c.SendMultipart(context.Background(), "products.create", http.MethodPost, "/api/products", Multipart{
		Fields: []FormField{{Name: "name", Value: "Boot"}},
		Files: []File{
			{Field: "image", Filename: "a.png", ContentType: "image/png", Data: []byte("A")},
			{Field: "image", Filename: "b.png", ContentType: "image/png", Data: []byte("B")},
		},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)

	s := <-got
	assert.Equal(t, "Boot", s.name)
	assert.Equal(t, []string{"a.png:A", "b.png:B"}, s.images)
	assert.Equal(t, "image/png", s.ctype)
}

func TestMessageFromPlainText(t *testing.T) {
	assert.Equal(t, "boom", messageFrom([]byte(" boom \n")))
	assert.Equal(t, "", messageFrom([]byte(`{"code": 3}`)))
	assert.Equal(t, "nested", messageFrom([]byte(`{"error": {"message": "nested"}}`)))
}

func TestCredentialScope(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, AnonymousScope, CredentialScope(bg))

	a := WithCookies(bg, []*http.Cookie{{Name: "session", Value: "s1"}, {Name: "theme", Value: "dark"}})
	b := WithCookies(bg, []*http.Cookie{{Name: "theme", Value: "dark"}, {Name: "session", Value: "s1"}})
	c := WithCookies(bg, []*http.Cookie{{Name: "session", Value: "s2"}})

	assert.Equal(t, CredentialScope(a), CredentialScope(b))
	assert.NotEqual(t, CredentialScope(a), CredentialScope(c))
	assert.NotContains(t, CredentialScope(a), "s1")
	assert.Len(t, CredentialScope(a), 24)
}

func TestTraceCountsCallsAndFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	c := New(Config{BaseURL: srv.URL})

	ctx, tr := WithTrace(context.Background())
	require.NoError(t, c.Get(ctx, "products.list", "/api/products", nil))
	require.Error(t, c.Get(ctx, "orders.list", "/api/orders", nil))
	srv.Close()
	require.Error(t, c.Get(ctx, "users.list", "/api/users", nil))

	assert.EqualValues(t, 3, tr.Calls())
	assert.EqualValues(t, 2, tr.Failed())
	assert.Greater(t, tr.Elapsed(), time.Duration(0))

	// untraced contexts are fine
	require.Error(t, c.Get(context.Background(), "users.list", "/api/users", nil))
}
