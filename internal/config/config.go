package config

import (
	"net/http"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Locale    LocaleConfig    `yaml:"locale"`
	Storage   StorageConfig   `yaml:"storage"`
	Notify    NotifyConfig    `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	DevAPI    DevAPIConfig    `yaml:"devapi"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// APIConfig points the outbound client at the auth REST API.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"  env:"API_BASE_URL"  env-default:"http://localhost:3001"`
	BasePath string        `yaml:"base_path" env:"API_BASE_PATH" env-default:"/v1"`
	Timeout  time.Duration `yaml:"timeout"   env:"API_TIMEOUT"   env-default:"10s"`
}

// Endpoint joins BaseURL, BasePath and path without doubling slashes.
func (c APIConfig) Endpoint(path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	prefix := "/" + strings.Trim(c.BasePath, "/")
	if prefix == "/" {
		prefix = ""
	}
	return base + prefix + "/" + strings.TrimLeft(path, "/")
}

// SessionConfig holds cookie names and attributes.
type SessionConfig struct {
	AccessCookie  string `yaml:"access_cookie"  env:"SESSION_ACCESS_COOKIE"  env-default:"access_token"`
	RefreshCookie string `yaml:"refresh_cookie" env:"SESSION_REFRESH_COOKIE" env-default:"refresh_token"`
	ClientCookie  string `yaml:"client_cookie"  env:"SESSION_CLIENT_COOKIE"  env-default:"kairon_client"`
	LocaleCookie  string `yaml:"locale_cookie"  env:"SESSION_LOCALE_COOKIE"  env-default:"NEXT_LOCALE"`
	MaxAgeDays    int    `yaml:"max_age_days"   env:"SESSION_MAX_AGE_DAYS"   env-default:"7"`
	Secure        bool   `yaml:"secure"         env:"SESSION_SECURE"         env-default:"true"`
	SameSite      string `yaml:"same_site"      env:"SESSION_SAME_SITE"      env-default:"strict"`
	Path          string `yaml:"path"           env:"SESSION_PATH"           env-default:"/"`
}

// SameSiteMode maps the configured string to http.SameSite.
// Unknown values fall back to strict.
func (c SessionConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

// LocaleConfig holds the locale used when nothing else matches.
type LocaleConfig struct {
	Default string `yaml:"default" env:"LOCALE_DEFAULT" env-default:"vi"`
}

// StorageConfig selects and configures the key-value backend for prototype data.
type StorageConfig struct {
	Driver   string         `yaml:"driver"   env:"STORAGE_DRIVER"   env-default:"memory"`
	FileDir  string         `yaml:"file_dir" env:"STORAGE_FILE_DIR" env-default:"./data"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string        `yaml:"url"            env:"REDIS_URL"`
	PoolSize     int           `yaml:"pool_size"      env:"REDIS_POOL_SIZE"      env-default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"5"`
	MaxRetries   int           `yaml:"max_retries"    env:"REDIS_MAX_RETRIES"    env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout"   env:"REDIS_DIAL_TIMEOUT"   env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"   env:"REDIS_READ_TIMEOUT"   env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout"  env:"REDIS_WRITE_TIMEOUT"  env-default:"3s"`
	KeyPrefix    string        `yaml:"key_prefix"     env:"REDIS_KEY_PREFIX"     env-default:"kairon:"`
	TTL          time.Duration `yaml:"ttl"            env:"REDIS_TTL"            env-default:"0s"`
}

// NotifyConfig holds notification queue settings.
type NotifyConfig struct {
	QueueSize int `yaml:"queue_size" env:"NOTIFY_QUEUE_SIZE" env-default:"20"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Accept-Language"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP limits for the auth endpoints.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE"  env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// DevAPIConfig configures the local stand-in for the auth API (cmd/devapi).
type DevAPIConfig struct {
	Host           string        `yaml:"host"             env:"DEVAPI_HOST"             env-default:"127.0.0.1"`
	Port           int           `yaml:"port"             env:"DEVAPI_PORT"             env-default:"3001"`
	JWTSecret      string        `yaml:"jwt_secret"       env:"DEVAPI_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"DEVAPI_JWT_ISSUER"       env-default:"kairon-devapi"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"DEVAPI_ACCESS_TOKEN_TTL" env-default:"24h"`
}
