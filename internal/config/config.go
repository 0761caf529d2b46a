package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "KLONDIKE"

type Config struct {
	HTTPAddr       string        `mapstructure:"http_addr"`
	LogLevel       slog.Level    `mapstructure:"-"`
	RawLogLevel    string        `mapstructure:"log_level"`
	PrefsBackend   string        `mapstructure:"prefs_backend"`
	PrefsPath      string        `mapstructure:"prefs_path"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	RedisKey       string        `mapstructure:"redis_key"`
	WebhookURL     string        `mapstructure:"webhook_url"`
	WebhookTimeout time.Duration `mapstructure:"webhook_timeout"`
	MaxGames       int           `mapstructure:"max_games"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
}

// Load reads defaults, then the YAML file named by KLONDIKE_CONFIG if set,
// then KLONDIKE_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("prefs_backend", "file")
	v.SetDefault("prefs_path", defaultPrefsPath())
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_key", "klondike:prefs:draw_count")
	v.SetDefault("webhook_url", "")
	v.SetDefault("webhook_timeout", 5*time.Second)
	v.SetDefault("max_games", 1000)
	v.SetDefault("session_ttl", 30*time.Minute)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	level, err := parseLogLevel(c.RawLogLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	switch c.PrefsBackend {
	case "memory", "file", "redis":
	default:
		return Config{}, fmt.Errorf("invalid PREFS_BACKEND %q", c.PrefsBackend)
	}
	if c.PrefsBackend == "file" && c.PrefsPath == "" {
		return Config{}, errors.New("PREFS_PATH is required when PREFS_BACKEND=file")
	}
	if c.WebhookTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid WEBHOOK_TIMEOUT %s", c.WebhookTimeout)
	}
	if c.SessionTTL < 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL %s", c.SessionTTL)
	}

	return c, nil
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "klondike-prefs.yaml"
	}
	return filepath.Join(dir, "klondike", "prefs.yaml")
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
