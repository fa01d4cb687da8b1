// Package storage keeps replacement product images and returns the URL the
// shop API stores for them. The shop and its storefront resolve that URL
// themselves, so it must be absolute.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
)

var (
	ErrNotImage  = errors.New("storage: not an image")
	ErrNotPublic = errors.New("storage: image URL is not absolute")
)

type PutInput struct {
	// Owner is the record the image illustrates (a product ID). Objects are
	// grouped under it.
	Owner       string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// PutImage stores an uploaded image and returns the URL to send as
// imageUrl. If the driver hands back anything but an absolute URL the object
// is removed again and ErrNotPublic is returned.
func PutImage(ctx context.Context, s Storage, r io.Reader, in PutInput) (PutResult, error) {
	if !strings.HasPrefix(in.ContentType, "image/") {
		return PutResult{}, fmt.Errorf("%w: %q", ErrNotImage, in.ContentType)
	}
	res, err := s.Put(ctx, r, in)
	if err != nil {
		return PutResult{}, err
	}
	if !validation.IsURL(res.URL) {
		_ = s.Delete(ctx, res.Key)
		return PutResult{}, fmt.Errorf("%w: %q", ErrNotPublic, res.URL)
	}
	return res, nil
}

// objectKey is <owner>/<uuid><ext>. Owners outside [A-Za-z0-9_-] are
// dropped so a key never leaves its directory.
func objectKey(in PutInput) string {
	name := uuid.NewString() + imageExt(in)
	if owner := safeOwner(in.Owner); owner != "" {
		return owner + "/" + name
	}
	return name
}

func safeOwner(s string) string {
	if s == "" || len(s) > 64 {
		return ""
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ""
		}
	}
	return s
}

func joinURL(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + key
}
