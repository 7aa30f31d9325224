package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the dashboard service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	APIBaseURL             string
	APIToken               string
	APITimeout             time.Duration
	MaxAttachmentBytes     int64
	RedisURL               string
	CoursesCacheTTL        time.Duration
	TestNotificationLimit  int
	TestNotificationWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DASHBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Study Dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.max_attachment_bytes", 32<<20)
	v.SetDefault("courses.cache_ttl", "5m")
	v.SetDefault("notifications.test_rate_limit", 3)

	timeout, err := parseDuration(v.GetString("api.timeout"), 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid api timeout: %w", err)
	}

	ttl, err := parseDuration(v.GetString("courses.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid courses cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		APIBaseURL:             strings.TrimRight(strings.TrimSpace(v.GetString("api.base_url")), "/"),
		APIToken:               strings.TrimSpace(v.GetString("api.token")),
		APITimeout:             timeout,
		MaxAttachmentBytes:     v.GetInt64("api.max_attachment_bytes"),
		RedisURL:               v.GetString("redis.url"),
		CoursesCacheTTL:        ttl,
		TestNotificationLimit:  v.GetInt("notifications.test_rate_limit"),
		TestNotificationWindow: time.Minute,
	}

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return Config{}, err
	}

	if cfg.TestNotificationLimit <= 0 {
		cfg.TestNotificationLimit = 3
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api base url must use http or https, got %q", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api base url must include a host, got %q", raw)
	}
	return nil
}
