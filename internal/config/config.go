package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines gateway configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"EVRENTAL_HTTP_PORT"`
	} `yaml:"http"`
	Backend struct {
		BaseURL        string `yaml:"baseUrl" env:"EVRENTAL_BACKEND_URL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"EVRENTAL_BACKEND_TIMEOUT"`
	} `yaml:"backend"`
	Redis struct {
		Addr     string `yaml:"addr" env:"EVRENTAL_REDIS_ADDR"`
		Password string `yaml:"password" env:"EVRENTAL_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Session struct {
		DefaultTTLMinutes int `yaml:"defaultTtlMinutes" env:"EVRENTAL_SESSION_TTL_MINUTES"`
	} `yaml:"session"`
	Booking struct {
		// MinRentalHours is the single authoritative minimum-duration knob.
		// Product policy states 1 hour; stricter deployments raise it here.
		MinRentalHours int `yaml:"minRentalHours" env:"EVRENTAL_MIN_RENTAL_HOURS"`
	} `yaml:"booking"`
	Catalog struct {
		CacheTTLSeconds int    `yaml:"cacheTtlSeconds" env:"EVRENTAL_CATALOG_CACHE_TTL"`
		Locale          string `yaml:"locale" env:"EVRENTAL_CATALOG_LOCALE"`
	} `yaml:"catalog"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" env:"EVRENTAL_CORS_ORIGINS"`
	} `yaml:"cors"`
}

// Load configuration via the YAML+env loader, then apply defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8090"
	cfg.Backend.BaseURL = "http://localhost:8080"
	cfg.Backend.TimeoutSeconds = 10
	cfg.Redis.Addr = "localhost:6379"
	cfg.Session.DefaultTTLMinutes = 12 * 60
	cfg.Booking.MinRentalHours = 1
	cfg.Catalog.CacheTTLSeconds = 60
	cfg.Catalog.Locale = "vi"

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return nil, errors.New("config: backend base url required")
	}
	if cfg.Booking.MinRentalHours < 1 {
		return nil, errors.New("config: minRentalHours must be at least 1")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8090"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// BackendTimeout returns the upstream HTTP client timeout.
func (c *Config) BackendTimeout() time.Duration {
	if c.Backend.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// SessionTTL returns the fallback session lifetime used when the backend
// token carries no expiry of its own.
func (c *Config) SessionTTL() time.Duration {
	if c.Session.DefaultTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.Session.DefaultTTLMinutes) * time.Minute
}

// CatalogCacheTTL returns how long a full catalog fetch stays reusable for
// local filtering.
func (c *Config) CatalogCacheTTL() time.Duration {
	if c.Catalog.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Catalog.CacheTTLSeconds) * time.Second
}
