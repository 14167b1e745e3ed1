package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Cart    CartConfig
	Redis   RedisConfig
	Tracing TracingConfig
	Log     LogConfig
	Upload  UploadConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	Env     string
	BaseURL string
	// TrustProxy honours X-Forwarded-For and X-Real-IP; only set it behind a proxy that rewrites them
	TrustProxy bool
}

// APIConfig points at the storefront REST backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration // zero means no client-side timeout
}

type SessionConfig struct {
	Secret string
	Name   string
	MaxAge int // seconds
	Secure bool
}

type CartConfig struct {
	Backend string // "cookie" or "redis"
	TTL     time.Duration
}

type RedisConfig struct {
	URL string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Exporter    string // "stdout" or "" for none
}

type LogConfig struct {
	Level string
}

type UploadConfig struct {
	MaxImageBytes     int64
	MaxImageDimension int
}

const (
	CartBackendCookie = "cookie"
	CartBackendRedis  = "redis"

	TraceExporterStdout = "stdout"
)

func Load() (*Config, error) {
	// .env.local wins over .env because godotenv never overrides a set variable
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "3000"),
			Host:    getEnv("HOST", "localhost"),
			Env:     getEnv("ENV", "development"),
			BaseURL:    getEnv("BASE_URL", ""),
			TrustProxy: getEnvAsBool("TRUST_PROXY", false),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 0),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			Name:   getEnv("SESSION_NAME", "session"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*30),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Cart: CartConfig{
			Backend: strings.ToLower(getEnv("CART_BACKEND", CartBackendCookie)),
			TTL:     getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("ENABLE_TRACING", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "soap-storefront"),
			Exporter:    strings.ToLower(getEnv("OTEL_TRACES_EXPORTER", "")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Upload: UploadConfig{
			MaxImageBytes:     int64(getEnvAsInt("UPLOAD_MAX_IMAGE_BYTES", 5<<20)),
			MaxImageDimension: getEnvAsInt("UPLOAD_MAX_IMAGE_DIMENSION", 1600),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the combinations Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}

	switch c.Cart.Backend {
	case CartBackendCookie:
	case CartBackendRedis:
		if c.Redis.URL == "" {
			return errors.New("REDIS_URL is required when CART_BACKEND=redis")
		}
	default:
		return errors.New("CART_BACKEND must be cookie or redis")
	}

	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required")
	}

	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
