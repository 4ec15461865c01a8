package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"career-sync/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, closer, err := New(config.LogConfig{Level: "debug", Format: "json", Output: path}, "career-sync")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	training := Component(l, "training")
	training.Debug().Int("samples", 3).Msg("snapshot built")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(b, &line); err != nil {
		t.Fatalf("log line is not json: %q", b)
	}
	if line["component"] != "training" || line["app"] != "career-sync" || line["samples"] != float64(3) {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, closer, err := New(config.LogConfig{Level: "warn", Output: path}, "career-sync")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	l.Info().Msg("dropped")
	_ = closer.Close()

	b, _ := os.ReadFile(path)
	if len(b) != 0 {
		t.Fatalf("info line written at warn level: %q", b)
	}
}

func TestStartup_WritesErrorEvents(t *testing.T) {
	var buf bytes.Buffer
	boot := Startup(&buf)
	boot.Error().Str("key", "APP_NAME").Msg("failed to load config")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %q", buf.Bytes())
	}
	if line["component"] != "startup" || line["level"] != "error" || line["key"] != "APP_NAME" {
		t.Fatalf("unexpected fields: %v", line)
	}
}
