package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "career-sync")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8000")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("CONFIG_FILE", "")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, k := range []string{"APP_NAME", "APP_ENV", "HTTP_PORT"} {
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("error %q does not name %s", err, k)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("MODEL_TREES", "")
	t.Setenv("MODEL_RETRAIN_LOCK_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Data.Source != DataSourceCSV {
		t.Fatalf("data source = %q, want csv", cfg.Data.Source)
	}
	if cfg.Model.Trees != 0 {
		t.Fatalf("trees = %d, want 0 (forest default applies)", cfg.Model.Trees)
	}
	if cfg.Model.RetrainLock != 5*time.Minute {
		t.Fatalf("retrain lock = %s", cfg.Model.RetrainLock)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
app:
  name: from-file
log:
  level: debug
model:
  trees: 250
  seed: 7
  retrain_lock: 90s
redis:
  disabled: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MODEL_TREES", "")
	t.Setenv("MODEL_SEED", "11")
	t.Setenv("MODEL_RETRAIN_LOCK_TTL", "")
	t.Setenv("REDIS_DISABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.AppName != "career-sync" {
		t.Fatalf("env must win over file, got %q", cfg.App.AppName)
	}
	if cfg.Log.Level != "debug" || cfg.Model.Trees != 250 || !cfg.Redis.Disabled {
		t.Fatalf("file defaults not applied: %+v", cfg)
	}
	if cfg.Model.Seed == nil || *cfg.Model.Seed != 11 {
		t.Fatalf("seed = %v, want 11", cfg.Model.Seed)
	}
	if cfg.Model.RetrainLock != 90*time.Second {
		t.Fatalf("retrain lock = %s, want 90s", cfg.Model.RetrainLock)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("MODEL_TREES", "many")
	t.Setenv("DATA_SOURCE", "ftp")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "MODEL_TREES") || !strings.Contains(err.Error(), "DATA_SOURCE") {
		t.Fatalf("error %q does not name the bad keys", err)
	}
}

func TestLoad_SourceSpecificRequirements(t *testing.T) {
	setRequired(t)
	t.Setenv("DATA_SOURCE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) || !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("expected missing S3_BUCKET, got %v", err)
	}
}

func TestLoad_DurationAcceptsSeconds(t *testing.T) {
	setRequired(t)
	t.Setenv("MODEL_STATUS_TTL", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Model.StatusTTL != 2*time.Minute {
		t.Fatalf("status ttl = %s, want 2m", cfg.Model.StatusTTL)
	}
}

func TestLoad_ZeroSeedIsKept(t *testing.T) {
	setRequired(t)
	t.Setenv("MODEL_SEED", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Model.Seed != nil {
		t.Fatalf("unset seed must stay nil, got %d", *cfg.Model.Seed)
	}

	t.Setenv("MODEL_SEED", "0")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Model.Seed == nil || *cfg.Model.Seed != 0 {
		t.Fatalf("seed = %v, want explicit 0", cfg.Model.Seed)
	}
}
