package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const minSecretKeyLength = 32

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port                   string
	DBPath                 string
	Location               *time.Location
	SecretKey              string
	CookieSecure           bool
	DefaultLanguage        string
	LogLevel               string
	BackupReminderInterval time.Duration
	Warnings               []string
}

// Load reads configs/config.yml when present and lets environment variables
// (PORT, DB_PATH, TZ, SECRET_KEY, ...) override it.
func Load(searchPaths ...string) (Config, error) {
	v, err := readConfig(searchPaths)
	if err != nil {
		return Config{}, err
	}

	secretKey, err := ResolveSecretKey(v.GetString("secret_key"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                   strings.TrimSpace(v.GetString("port")),
		DBPath:                 strings.TrimSpace(v.GetString("db_path")),
		SecretKey:              secretKey,
		CookieSecure:           v.GetBool("cookie_secure"),
		DefaultLanguage:        strings.TrimSpace(v.GetString("default_language")),
		LogLevel:               strings.TrimSpace(v.GetString("log_level")),
		BackupReminderInterval: v.GetDuration("backup_reminder_interval"),
	}

	tzName := strings.TrimSpace(v.GetString("tz"))
	location, err := time.LoadLocation(tzName)
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid TZ %q, falling back to UTC", tzName))
		location = time.UTC
	}
	cfg.Location = location

	if cfg.BackupReminderInterval <= 0 {
		cfg.Warnings = append(cfg.Warnings, "BACKUP_REMINDER_INTERVAL must be positive, using 24h")
		cfg.BackupReminderInterval = 24 * time.Hour
	}

	return cfg, nil
}

// LoadDBPath resolves only the database path, for commands that never serve
// HTTP and so need no secret key.
func LoadDBPath(searchPaths ...string) (string, error) {
	v, err := readConfig(searchPaths)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v.GetString("db_path")), nil
}

func readConfig(searchPaths []string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"configs"}
	}
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", filepath.Join("data", "ovucast.db"))
	v.SetDefault("tz", "UTC")
	v.SetDefault("secret_key", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("default_language", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("backup_reminder_interval", 24*time.Hour)
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}
