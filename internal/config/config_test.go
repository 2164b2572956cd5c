package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Environment != "development" {
		t.Errorf("Expected environment 'development', got %q", cfg.Environment)
	}
	if cfg.FlagNamespace != "over-my-head" {
		t.Errorf("Expected flag namespace 'over-my-head', got %q", cfg.FlagNamespace)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected default log level info, got %v", cfg.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LANGUAGE", "pt-BR")

	cfg := Load()

	if cfg.Environment != "production" {
		t.Errorf("Expected environment 'production', got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug log level, got %v", cfg.LogLevel)
	}
	if cfg.Language != "pt-BR" {
		t.Errorf("Expected language 'pt-BR', got %q", cfg.Language)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
