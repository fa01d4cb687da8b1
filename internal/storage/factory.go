package storage

import (
	"context"
	"fmt"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
)

type Config struct {
	// Driver is local or s3.
	Driver    string
	LocalDir  string
	URLPrefix string
	S3        S3Config
}

// New builds the configured driver. An empty driver means local.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "./storage/uploads"
		}
		if !validation.IsURL(cfg.URLPrefix) {
			return nil, fmt.Errorf("storage: local url_prefix %q must be an absolute URL", cfg.URLPrefix)
		}
		return NewLocal(dir, cfg.URLPrefix), nil

	case "s3":
		if cfg.S3.Region == "" || cfg.S3.Bucket == "" || cfg.S3.PublicBaseURL == "" {
			return nil, fmt.Errorf("storage: s3 needs region, bucket and public_base_url")
		}
		if cfg.S3.Prefix == "" {
			cfg.S3.Prefix = "uploads"
		}
		return NewS3(ctx, cfg.S3)

	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
