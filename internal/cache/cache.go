// Package cache holds page data fetched from the shop API between requests.
//
// Entity services read lists through the cache and delete the affected keys
// after every successful mutation, so the redirect that follows a write
// always re-fetches fresh data.
//
// Every entry is stored under its credential scope: data fetched with one
// admin's session is only ever served back to requests carrying the same
// cookies.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
)

// scopeSep joins a base key and its credential scope.
const scopeSep = "@"

type Cache interface {
	// Get decodes the entry into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Delete removes each key along with all of its scoped variants
	// ("<key>@<scope>").
	Delete(ctx context.Context, keys ...string) error
}

// Key builds a namespaced cache key, e.g. Key("list", "product").
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Scoped is key under the credential scope of ctx.
func Scoped(ctx context.Context, key string) string {
	return key + scopeSep + apiclient.CredentialScope(ctx)
}

// Load is cache-aside: serve from c when present, otherwise fetch and store.
// Entries are looked up under the caller's credential scope. Cache failures
// never fail the read.
func Load[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	key = Scoped(ctx, key)
	var v T
	if c != nil {
		if ok, err := c.Get(ctx, key, &v); err == nil && ok {
			return v, nil
		}
	}
	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if c != nil {
		_ = c.Set(ctx, key, v, ttl)
	}
	return v, nil
}

// Invalidate deletes keys after a write, for every credential scope, so no
// admin keeps seeing the pre-write list. A failed delete is logged, not
// returned.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		slog.Default().LogAttrs(ctx, slog.LevelWarn, "cache_invalidate_failed",
			slog.Any("keys", keys),
			slog.Any("err", err),
		)
	}
}
