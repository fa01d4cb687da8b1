package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "http://admin.test/uploads/")

	res, err := l.Put(context.Background(), bytes.NewReader([]byte("img")), PutInput{Owner: "prod-00001", Filename: "Boot.PNG", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "prod-00001/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "http://admin.test/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	entries, err := os.ReadDir(filepath.Join(dir, "prod-00001"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, l.Delete(context.Background(), res.Key))
}

func TestObjectKeyDropsUnsafeOwner(t *testing.T) {
	assert.False(t, strings.Contains(objectKey(PutInput{Owner: "../etc", Filename: "a.png"}), "/"))
	assert.False(t, strings.Contains(objectKey(PutInput{Owner: "a/b", Filename: "a.png"}), "/"))
	assert.True(t, strings.HasPrefix(objectKey(PutInput{Owner: "cat_01", Filename: "a.png"}), "cat_01/"))
}

func TestLocalDeleteStaysInBaseDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	l := NewLocal(filepath.Join(root, "uploads"), "http://admin.test/uploads")
	assert.Error(t, l.Delete(context.Background(), "../keep.png"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestMountPath(t *testing.T) {
	assert.Equal(t, "/uploads", NewLocal("", "http://admin.test/uploads/").MountPath())
	assert.Equal(t, "/media/img", NewLocal("", "https://admin.test:8443/media/img").MountPath())
	assert.Equal(t, "/uploads", NewLocal("", "http://admin.test").MountPath())
}

func TestPutImageRejectsRelativeURL(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	_, err := PutImage(context.Background(), l, bytes.NewReader([]byte("img")), PutInput{Filename: "a.png", ContentType: "image/png"})
	require.ErrorIs(t, err, ErrNotPublic)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected image must not be left behind")
}

func TestPutImageRejectsNonImage(t *testing.T) {
	l := NewLocal(t.TempDir(), "http://admin.test/uploads")
	_, err := PutImage(context.Background(), l, strings.NewReader("MZ"), PutInput{Filename: "a.exe", ContentType: "application/x-msdownload"})
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestImageExtFromContentType(t *testing.T) {
	assert.Equal(t, ".jpg", imageExt(PutInput{Filename: "blob", ContentType: "image/jpeg"}))
	assert.Equal(t, ".webp", imageExt(PutInput{Filename: "a.webp"}))
	assert.Equal(t, "", imageExt(PutInput{Filename: "a.exe"}))
}

func TestNewRejectsIncompleteS3(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "s3", S3: S3Config{Region: "us-east-1"}})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{LocalDir: t.TempDir(), URLPrefix: "/uploads"})
	assert.Error(t, err)

	s, err := New(context.Background(), Config{LocalDir: t.TempDir(), URLPrefix: "http://localhost:8080/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)
}
