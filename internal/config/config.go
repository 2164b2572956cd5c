package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds the module's runtime configuration, loaded from the environment.
type Config struct {
	Environment   string
	LogLevel      slog.Level
	RedisURL      string
	FlagNamespace string // namespace under which flags are written on documents
	LangDir       string // directory holding <lang>.json translation files
	Language      string // preferred language tag, e.g. "en" or "pt-BR"
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		FlagNamespace: getEnv("FLAG_NAMESPACE", "over-my-head"),
		LangDir:       getEnv("LANG_DIR", "./lang"),
		Language:      getEnv("LANGUAGE", "en"),
	}
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
