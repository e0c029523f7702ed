package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vaultpass/vaultpass-cli/internal/model"
	"github.com/vaultpass/vaultpass-cli/internal/viewer"
)

const (
	defaultLength      = 18
	defaultAPIAddr     = "127.0.0.1:8089"
	defaultTokenTTL    = 24 * time.Hour
	defaultLogLevel    = "warn"
	defaultLogMaxSize  = 10
	defaultLogMaxFiles = 5
)

type Config struct {
	Home          string
	StoreFile     string
	SettingsFile  string
	DefaultLength int
	OpenViewer    bool

	APIAddr   string
	APISecret string
	TokenTTL  time.Duration

	LogLevel    string
	LogFile     string
	LogMaxSize  int
	LogMaxFiles int
}

// Overrides holds values set by command-line flags. Empty fields are ignored.
type Overrides struct {
	Home         string
	StoreFile    string
	SettingsFile string
}

func Load(o Overrides) (Config, error) {
	home := o.Home
	if home == "" {
		home = os.Getenv("VAULTPASS_HOME")
	}
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		home = filepath.Join(userHome, "Downloads")
	}
	home = filepath.Clean(home)

	cfg := Config{
		Home:          home,
		StoreFile:     firstNonEmpty(o.StoreFile, getEnv("VAULTPASS_STORE_FILE", filepath.Join(home, "passwords.txt"))),
		SettingsFile:  firstNonEmpty(o.SettingsFile, getEnv("VAULTPASS_SETTINGS_FILE", filepath.Join(home, "password_settings.json"))),
		DefaultLength: model.ClampLength(getEnvInt("VAULTPASS_DEFAULT_LENGTH", defaultLength)),
		OpenViewer:    getEnvBool("VAULTPASS_OPEN_VIEWER", viewer.DefaultEnabled()),
		APIAddr:       getEnv("VAULTPASS_API_ADDR", defaultAPIAddr),
		APISecret:     getEnv("VAULTPASS_API_SECRET", ""),
		TokenTTL:      getEnvDuration("VAULTPASS_TOKEN_TTL", defaultTokenTTL),
		LogLevel:      getEnv("VAULTPASS_LOG_LEVEL", defaultLogLevel),
		LogFile:       getEnv("VAULTPASS_LOG_FILE", ""),
		LogMaxSize:    getEnvInt("VAULTPASS_LOG_MAX_SIZE_MB", defaultLogMaxSize),
		LogMaxFiles:   getEnvInt("VAULTPASS_LOG_MAX_FILES", defaultLogMaxFiles),
	}

	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return Config{}, fmt.Errorf("create data directory: %w", err)
	}

	return cfg, nil
}

// DefaultPolicy is the policy used for settings keys that are not on disk.
func (c Config) DefaultPolicy() model.GenerationPolicy {
	return model.DefaultPolicy(c.DefaultLength)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
