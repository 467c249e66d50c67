package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string

	// RedisURL is empty when the console runs without a rules engine.
	RedisURL      string
	RulesChannel  string
	EventsChannel string

	KeymapFile  string
	OTelEnabled bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:       getEnv("LOG_FILE", "tactics-console.log"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RulesChannel:  getEnv("RULES_CHANNEL", "menu-rules"),
		EventsChannel: getEnv("EVENTS_CHANNEL", "menu-events"),
		KeymapFile:    getEnv("KEYMAP_FILE", ""),
	}

	otel, err := strconv.ParseBool(getEnv("OTEL_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTEL_ENABLED: %w", err)
	}
	cfg.OTelEnabled = otel

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return nil
	}
	if !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("invalid REDIS_URL %q: expected redis:// or rediss:// scheme", c.RedisURL)
	}
	if c.RulesChannel == "" || c.EventsChannel == "" {
		return errors.New("RULES_CHANNEL and EVENTS_CHANNEL must not be empty when REDIS_URL is set")
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
