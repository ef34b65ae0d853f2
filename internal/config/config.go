// Package config provides configuration loading for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pennywise-app/pennywise/internal/common"
)

// Config is the fully resolved application configuration. Secrets (JWT
// signing key, LLM API key) are injected here and passed to constructors
// explicitly; no package reads the environment on its own.
type Config struct {
	ServerAddr           string
	DatabasePath         string
	JWTSecret            string
	LLMAPIKey            string
	LLMModel             string
	LLMBaseURL           string
	LLMTimeout           time.Duration
	MonthlyBaselineCents int64
}

// SetDefaults registers default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "~/.local/share/pennywise/pennywise.db")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.timeout", "10s")
	v.SetDefault("insights.monthly_baseline_cents", 250000)
}

// Load resolves the configuration from the given viper instance.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerAddr:           v.GetString("server.addr"),
		DatabasePath:         ExpandPath(v.GetString("database.path")),
		JWTSecret:            v.GetString("auth.jwt_secret"),
		LLMAPIKey:            v.GetString("llm.api_key"),
		LLMModel:             v.GetString("llm.model"),
		LLMBaseURL:           v.GetString("llm.base_url"),
		LLMTimeout:           v.GetDuration("llm.timeout"),
		MonthlyBaselineCents: v.GetInt64("insights.monthly_baseline_cents"),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: auth.jwt_secret", common.ErrMissingConfig)
	}
	if cfg.LLMTimeout <= 0 {
		return nil, fmt.Errorf("%w: llm.timeout must be positive", common.ErrInvalidConfig)
	}
	if cfg.MonthlyBaselineCents <= 0 {
		return nil, fmt.Errorf("%w: insights.monthly_baseline_cents must be positive", common.ErrInvalidConfig)
	}

	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
