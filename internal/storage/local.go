package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Local writes images under BaseDir. The console serves them itself, and
// URLPrefix is the absolute URL that mount is reachable at from the shop.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

// MountPath is the router path for URLPrefix ("/uploads" for
// "http://admin.example.com/uploads").
func (l *Local) MountPath() string {
	p := l.URLPrefix
	if u, err := url.Parse(l.URLPrefix); err == nil && u.Host != "" {
		p = u.Path
	}
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return "/uploads"
	}
	return p
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}

	key := objectKey(in)
	dst := l.path(key)
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PutResult{}, fmt.Errorf("storage: create dir: %w", err)
	}

	// a failed copy must not leave a half-written image behind the final name
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return PutResult{}, fmt.Errorf("storage: create temp: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return PutResult{}, fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return PutResult{}, fmt.Errorf("storage: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return PutResult{}, fmt.Errorf("storage: rename %s: %w", key, err)
	}

	return PutResult{Key: key, URL: joinURL(l.URLPrefix, key)}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(l.path(key))
}

// path maps key below BaseDir; ".." segments cannot climb out.
func (l *Local) path(key string) string {
	return filepath.Join(l.BaseDir, filepath.FromSlash(path.Clean("/"+key)))
}

// imageExt keeps a known image extension from the filename and otherwise
// derives one from the content type.
func imageExt(in PutInput) string {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg", ".avif":
		return ext
	}
	if in.ContentType != "" {
		if m := mimetype.Lookup(in.ContentType); m != nil {
			return m.Extension()
		}
	}
	return ""
}

func (l *Local) String() string { return fmt.Sprintf("local(%s -> %s)", l.BaseDir, l.URLPrefix) }
