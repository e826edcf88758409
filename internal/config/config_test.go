package config

import (
	"strings"
	"testing"
	"time"

	"sentilytics/internal/domain/analysis"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "STORE_DRIVER", "SESSION_DEFAULT_DATE_RANGE", "SESSION_REFRESH_INTERVAL", "UPSTREAM_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Session.RefreshInterval != 2*time.Minute {
		t.Errorf("RefreshInterval = %v", cfg.Session.RefreshInterval)
	}
	if got := cfg.Session.DefaultFilter(); got != analysis.DefaultFilter() {
		t.Errorf("DefaultFilter = %+v", got)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Errorf("Store.Driver = %q", cfg.Store.Driver)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_DEFAULT_DATE_RANGE", "7D")
	t.Setenv("SESSION_DEFAULT_PLATFORM", "Reddit")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_FILE_PATH", "/tmp/state.json")
	t.Setenv("UPSTREAM_MAX_RETRIES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := analysis.FilterConfig{Platform: "reddit", DateRange: analysis.DateRange7d}
	if got := cfg.Session.DefaultFilter(); got != want {
		t.Errorf("DefaultFilter = %+v, want %+v", got, want)
	}
	if len(cfg.Server.CorsOrigins) != 2 || cfg.Server.CorsOrigins[1] != "http://b.test" {
		t.Errorf("CorsOrigins = %v", cfg.Server.CorsOrigins)
	}
	if cfg.Store.FilePath != "/tmp/state.json" || cfg.Upstream.MaxRetries != 0 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SESSION_DEFAULT_DATE_RANGE", "1y", "SESSION_DEFAULT_DATE_RANGE"},
		{"SESSION_REFRESH_INTERVAL", "-1s", "SESSION_REFRESH_INTERVAL"},
		{"STORE_DRIVER", "redis", "STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	c := DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "p@ss", Database: "senti", SSLMode: "disable"}
	if got := c.DSN(); got != "postgres://app:p%40ss@db:5433/senti?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
}
