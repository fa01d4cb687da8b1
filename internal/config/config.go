// Package config loads the console's settings from, in increasing priority:
// defaults, config/admin.yaml, a .env file, ECOM_ADMIN_* environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
)

const envPrefix = "ecom_admin"

type Config struct {
	HTTP      HTTPConfig
	API       APIConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Flash     FlashConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type HTTPConfig struct {
	Addr string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	// Driver is memory or redis.
	Driver string
	TTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type StorageConfig struct {
	Driver    string
	LocalDir  string
	URLPrefix string
	S3        S3Config
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	Endpoint      string
}

type FlashConfig struct {
	Secret string
	Secure bool
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("api.base_url", "http://localhost:8081")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "ecom-admin")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./storage/uploads")
	v.SetDefault("storage.url_prefix", "http://localhost:8080/uploads")
	v.SetDefault("storage.s3.region", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "uploads")
	v.SetDefault("storage.s3.public_base_url", "")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("flash.secret", "")
	v.SetDefault("flash.secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads the configuration. args are the command-line arguments without
// the program name.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("admin", pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to a config file (default config/admin.yaml)")
	fs.String("addr", "", "HTTP listen address")
	fs.String("api", "", "shop API base URL")
	envFile := fs.String("env-file", ".env", "dotenv file to load if present")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		return Config{}, fmt.Errorf("config: load %s: %w", *envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("admin")
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	if err := v.BindPFlag("http.addr", fs.Lookup("addr")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("api.base_url", fs.Lookup("api")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTP: HTTPConfig{Addr: v.GetString("http.addr")},
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Cache: CacheConfig{
			Driver: v.GetString("cache.driver"),
			TTL:    v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Storage: StorageConfig{
			Driver:    v.GetString("storage.driver"),
			LocalDir:  v.GetString("storage.local_dir"),
			URLPrefix: v.GetString("storage.url_prefix"),
			S3: S3Config{
				Region:        v.GetString("storage.s3.region"),
				Bucket:        v.GetString("storage.s3.bucket"),
				Prefix:        v.GetString("storage.s3.prefix"),
				PublicBaseURL: v.GetString("storage.s3.public_base_url"),
				Endpoint:      v.GetString("storage.s3.endpoint"),
			},
		},
		Flash: FlashConfig{
			Secret: v.GetString("flash.secret"),
			Secure: v.GetBool("flash.secure"),
		},
		Log:       LogConfig{Level: v.GetString("log.level")},
		RateLimit: RateLimitConfig{RPS: v.GetFloat64("ratelimit.rps"), Burst: v.GetInt("ratelimit.burst")},
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url is required")
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: unknown cache.driver %q", c.Cache.Driver)
	}
	if c.API.Timeout <= 0 {
		return errors.New("config: api.timeout must be positive")
	}
	// the shop stores this URL and fetches it from its own host
	switch c.Storage.Driver {
	case "", "local":
		if !validation.IsURL(c.Storage.URLPrefix) {
			return fmt.Errorf("config: storage.url_prefix %q must be an absolute URL", c.Storage.URLPrefix)
		}
	}
	return nil
}

// SlogLevel maps log.level to a slog level; unknown values mean info.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
