package flash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "admin_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Product updated successfully"})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Product updated successfully", f.Message)
}

func TestCodecRejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secret"), "admin_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashError, Message: "x"})
	require.NoError(t, err)

	other := NewCodec([]byte("other"), "admin_flash", false)
	_, err = other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("no-dot")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecCarriesPage(t *testing.T) {
	c := NewCodec([]byte("secret"), "admin_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Category deleted successfully.", Page: "/admin/categories"})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "/admin/categories", f.Page)
	assert.True(t, f.For("/admin/categories"))
	assert.False(t, f.For("/admin/products"))
}

func TestCodecRejectsUnknownKind(t *testing.T) {
	c := NewCodec([]byte("secret"), "admin_flash", false)
	_, err := c.Encode(view.Flash{Kind: "celebrate", Message: "x"})
	assert.Error(t, err)
}

func TestCodecExpires(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCodec([]byte("secret"), "admin_flash", false)
	c.now = func() time.Time { return issued }

	v, err := c.Encode(view.Flash{Kind: view.FlashError, Message: "Failed to update order. Please try again."})
	require.NoError(t, err)

	c.now = func() time.Time { return issued.Add(time.Minute) }
	_, err = c.Decode(v)
	require.NoError(t, err)

	c.now = func() time.Time { return issued.Add(DefaultTTL + time.Second) }
	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrExpired)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 120, c.CookieMaxAge())
}
