// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sentilytics/internal/domain/analysis"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverFile     = "file"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Log         LogConfig
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Upstream    UpstreamConfig
	Session     SessionConfig
	Store       StoreConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level     string
	SentryDSN string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
	AutoMigrate  bool
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	Enabled        bool
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// UpstreamConfig holds the sentiment API client configuration
type UpstreamConfig struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryInitial    time.Duration
	RetryMax        time.Duration
	RetryMultiplier float64
}

// SessionConfig holds analysis session configuration
type SessionConfig struct {
	DefaultPlatform  string
	DefaultDateRange string
	RefreshInterval  time.Duration
	EventsTopic      string
	AnalyzePerMinute int
	AnalyzeBurst     int
}

// StoreConfig selects where last queries and runs are kept
type StoreConfig struct {
	Driver   string
	FilePath string
}

// DSN returns the connection URL of the database
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// DefaultFilter returns the configured initial filter
func (c SessionConfig) DefaultFilter() analysis.FilterConfig {
	return analysis.FilterConfig{
		Platform:  strings.ToLower(c.DefaultPlatform),
		DateRange: analysis.DateRange(strings.ToLower(c.DefaultDateRange)),
	}
}

// LoadDotEnv reads a .env file from the working directory when present
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Log: LogConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			SentryDSN: getEnv("SENTRY_DSN", ""),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 45*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "sentilytics"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		NATS: NATSConfig{
			Enabled:        getEnvAsBool("NATS_ENABLED", true),
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:         getEnv("UPSTREAM_BASE_URL", "http://localhost:8000"),
			Timeout:         getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),
			MaxRetries:      getEnvAsInt("UPSTREAM_MAX_RETRIES", 2),
			RetryInitial:    getEnvAsDuration("UPSTREAM_RETRY_INITIAL", 500*time.Millisecond),
			RetryMax:        getEnvAsDuration("UPSTREAM_RETRY_MAX", 5*time.Second),
			RetryMultiplier: getEnvAsFloat("UPSTREAM_RETRY_MULTIPLIER", 1.5),
		},
		Session: SessionConfig{
			DefaultPlatform:  getEnv("SESSION_DEFAULT_PLATFORM", analysis.PlatformAll),
			DefaultDateRange: getEnv("SESSION_DEFAULT_DATE_RANGE", string(analysis.DateRange24h)),
			RefreshInterval:  getEnvAsDuration("SESSION_REFRESH_INTERVAL", 2*time.Minute),
			EventsTopic:      getEnv("SESSION_EVENTS_TOPIC", "sentilytics"),
			AnalyzePerMinute: getEnvAsInt("SESSION_ANALYZE_PER_MINUTE", 6),
			AnalyzeBurst:     getEnvAsInt("SESSION_ANALYZE_BURST", 3),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
			FilePath: expandHome(getEnv("STORE_FILE_PATH", "~/.sentilytics/state.json")),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if _, err := analysis.ParseDateRange(config.Session.DefaultDateRange); err != nil {
		return fmt.Errorf("SESSION_DEFAULT_DATE_RANGE: %w", err)
	}

	if config.Session.RefreshInterval <= 0 {
		return fmt.Errorf("SESSION_REFRESH_INTERVAL must be positive")
	}

	switch config.Store.Driver {
	case StoreDriverPostgres, StoreDriverFile:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", config.Store.Driver)
	}

	if config.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL must be set")
	}

	if config.Upstream.MaxRetries < 0 {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
