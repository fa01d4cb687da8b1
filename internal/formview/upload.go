package formview

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes bounds a single uploaded file.
const MaxUploadBytes = 10 << 20

// Upload is a file held in memory for the lifetime of one request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// IsImage checks the declared type the way a browser would.
func (u Upload) IsImage() bool {
	return strings.HasPrefix(u.ContentType, "image/")
}

// DataURL is an inline preview; it is never stored anywhere.
func (u Upload) DataURL() string {
	if !u.IsImage() || len(u.Data) == 0 {
		return ""
	}
	return "data:" + u.ContentType + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
}

// ReadUpload reads fh into memory. Missing or generic content types are
// sniffed from the bytes.
func ReadUpload(fh *multipart.FileHeader) (Upload, error) {
	if fh.Size > MaxUploadBytes {
		return Upload{}, fmt.Errorf("upload %s: exceeds %d bytes", fh.Filename, MaxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	if len(data) > MaxUploadBytes {
		return Upload{}, fmt.Errorf("upload %s: exceeds %d bytes", fh.Filename, MaxUploadBytes)
	}

	ct := fh.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(data).String()
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
	}
	return Upload{Filename: fh.Filename, ContentType: ct, Size: int64(len(data)), Data: data}, nil
}

var (
	uploadSliceType = reflect.TypeOf([]Upload{})
	uploadPtrType   = reflect.TypeOf(&Upload{})
)

// LoadUploads fills the draft fields tagged `upload:"<key>"` (of type
// []Upload or *Upload) from the multipart form. Empty file inputs are
// skipped.
func LoadUploads(form *multipart.Form, dst any) error {
	if form == nil {
		return nil
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("formview: LoadUploads needs a struct pointer, got %T", dst)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("upload")
		if key == "" {
			continue
		}
		var ups []Upload
		for _, fh := range form.File[key] {
			if fh.Size == 0 && fh.Filename == "" {
				continue
			}
			u, err := ReadUpload(fh)
			if err != nil {
				return err
			}
			ups = append(ups, u)
		}
		switch t.Field(i).Type {
		case uploadSliceType:
			v.Field(i).Set(reflect.ValueOf(ups))
		case uploadPtrType:
			if len(ups) > 0 {
				u := ups[0]
				v.Field(i).Set(reflect.ValueOf(&u))
			}
		default:
			return fmt.Errorf("formview: field %s tagged upload must be []Upload or *Upload", t.Field(i).Name)
		}
	}
	return nil
}
