package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// The devapi section is not checked here; cmd/devapi calls DevAPIConfig.Validate.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if _, ok := domain.ParseLocale(c.Locale.Default); !ok {
		return fmt.Errorf("locale.default must be one of %v (got %q)", domain.Locales, c.Locale.Default)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Notify.QueueSize <= 0 {
		return fmt.Errorf("notify.queue_size must be > 0 (got %d)", c.Notify.QueueSize)
	}

	if c.RateLimit.Enabled && c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be > 0 (got %d)", c.RateLimit.AuthPerMinute)
	}
	if c.RateLimit.Enabled && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (a *APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https (got %q)", a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host (got %q)", a.BaseURL)
	}
	if a.BasePath != "" && !strings.HasPrefix(a.BasePath, "/") {
		return fmt.Errorf("base_path must start with / (got %q)", a.BasePath)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	return nil
}

func (s *SessionConfig) validate() error {
	if s.AccessCookie == "" || s.ClientCookie == "" || s.LocaleCookie == "" {
		return fmt.Errorf("cookie names must not be empty")
	}
	if s.MaxAgeDays <= 0 {
		return fmt.Errorf("max_age_days must be > 0 (got %d)", s.MaxAgeDays)
	}
	if !slices.Contains([]string{"strict", "lax", "none"}, strings.ToLower(s.SameSite)) {
		return fmt.Errorf("same_site must be strict, lax or none (got %q)", s.SameSite)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case StorageMemory:
	case StorageFile:
		if s.FileDir == "" {
			return fmt.Errorf("file_dir is required for the file driver")
		}
	case StoragePostgres:
		if s.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case StorageRedis:
		if s.Redis.URL == "" {
			return fmt.Errorf("redis.url is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", s.Driver)
	}
	return nil
}

// Validate checks the dev API settings.
func (c DevAPIConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("devapi.jwt_secret must be at least 32 characters (got %d)", len(c.JWTSecret))
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("devapi.access_token_ttl must be > 0 (got %v)", c.AccessTokenTTL)
	}
	return nil
}
