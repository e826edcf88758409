package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONOutputCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Level: "info", Output: &buf})

	log.WithComponent("Session").Info("View derived", "session_id", "abc")
	log.Debug("dropped")

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if record["component"] != "Session" {
		t.Errorf("component = %v, want Session", record["component"])
	}
	if record["session_id"] != "abc" {
		t.Errorf("session_id = %v, want abc", record["session_id"])
	}
	if record["message"] != "View derived" {
		t.Errorf("message = %v, want View derived", record["message"])
	}
}
