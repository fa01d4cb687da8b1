// Package flash signs the admin_flash cookie that carries an action's outcome
// across the Post/Redirect/Get hop.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

// DefaultTTL only has to cover one redirect and the page load after it.
const DefaultTTL = 2 * time.Minute

var (
	ErrInvalid = errors.New("invalid flash cookie")
	ErrExpired = fmt.Errorf("%w: expired", ErrInvalid)
)

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	TTL        time.Duration

	now func() time.Time
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, TTL: DefaultTTL, now: time.Now}
}

// envelope stamps the flash so a replayed cookie dies with its TTL even if
// the browser ignores Max-Age.
type envelope struct {
	Flash    view.Flash `json:"f"`
	IssuedAt int64      `json:"iat"`
}

// value format: base64(json envelope).base64(hmac)
func (c *Codec) Encode(f view.Flash) (string, error) {
	if !f.Kind.Valid() {
		return "", fmt.Errorf("flash: unknown kind %q", f.Kind)
	}
	b, err := json.Marshal(envelope{Flash: f, IssuedAt: c.clock().Unix()})
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrInvalid
	}
	f := env.Flash
	if !f.Kind.Valid() || strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	if age := c.clock().Sub(time.Unix(env.IssuedAt, 0)); age > c.ttl() || age < -time.Minute {
		return nil, ErrExpired
	}
	return &f, nil
}

func (c *Codec) CookieMaxAge() int {
	return int(c.ttl().Seconds())
}

func (c *Codec) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func (c *Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
