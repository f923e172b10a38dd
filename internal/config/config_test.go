package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestResolveSecretKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "  ", wantErr: ErrSecretKeyMissing},
		{name: "placeholder", raw: "change_me_in_production", wantErr: ErrSecretKeyPlaceholder},
		{name: "example placeholder", raw: "replace_with_at_least_32_random_characters", wantErr: ErrSecretKeyPlaceholder},
		{name: "too short", raw: "too-short-secret", wantErr: ErrSecretKeyTooShort},
		{name: "valid", raw: validSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := ResolveSecretKey(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if secret != tt.raw {
				t.Fatalf("expected %q, got %q", tt.raw, secret)
			}
		})
	}
}

func TestLoadDefaultsAndEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("TZ", "Europe/Moscow")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Location.String() != "Europe/Moscow" {
		t.Fatalf("expected Europe/Moscow location, got %s", cfg.Location)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected cookie secure flag from environment")
	}
	if cfg.DBPath != filepath.Join("data", "ovucast.db") {
		t.Fatalf("unexpected default db path %q", cfg.DBPath)
	}
	if cfg.BackupReminderInterval != 24*time.Hour {
		t.Fatalf("expected default reminder interval 24h, got %s", cfg.BackupReminderInterval)
	}
	if len(cfg.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", cfg.Warnings)
	}
}

func TestLoadFallsBackToUTCForInvalidTimezone(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("TZ", "Mars/Olympus")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", cfg.Location)
	}
	if len(cfg.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", cfg.Warnings)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("TZ", "")

	dir := t.TempDir()
	content := "port: \"7070\"\nlog_level: debug\nbackup_reminder_interval: 6h\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "7070" || cfg.LogLevel != "debug" {
		t.Fatalf("expected values from config file, got port=%q level=%q", cfg.Port, cfg.LogLevel)
	}
	if cfg.BackupReminderInterval != 6*time.Hour {
		t.Fatalf("expected 6h reminder interval, got %s", cfg.BackupReminderInterval)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrSecretKeyMissing) {
		t.Fatalf("expected ErrSecretKeyMissing, got %v", err)
	}
}

func TestLoadDBPathNeedsNoSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DB_PATH", "")

	path, err := LoadDBPath(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDBPath() unexpected error: %v", err)
	}
	if path != filepath.Join("data", "ovucast.db") {
		t.Fatalf("expected default db path, got %q", path)
	}

	t.Setenv("DB_PATH", "/var/lib/ovucast/custom.db")
	path, err = LoadDBPath(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDBPath() unexpected error: %v", err)
	}
	if path != "/var/lib/ovucast/custom.db" {
		t.Fatalf("expected db path from environment, got %q", path)
	}
}
