package apiclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
)

type cookiesKey struct{}

// AnonymousScope is the credential scope of a call that forwards no cookies.
const AnonymousScope = "anon"

// WithCookies attaches the admin's own cookies so upstream calls are made
// with the same credentials the browser holds.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

func cookiesFrom(ctx context.Context) []*http.Cookie {
	cs, _ := ctx.Value(cookiesKey{}).([]*http.Cookie)
	return cs
}

// CredentialScope fingerprints the cookies forwarded in ctx. Calls made with
// the same cookies share a scope regardless of cookie order; the values
// themselves never appear in it.
func CredentialScope(ctx context.Context) string {
	cs := cookiesFrom(ctx)
	if len(cs) == 0 {
		return AnonymousScope
	}
	pairs := make([]string, 0, len(cs))
	for _, c := range cs {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	sort.Strings(pairs)
	sum := sha256.Sum256([]byte(strings.Join(pairs, "\x00")))
	return hex.EncodeToString(sum[:12])
}
