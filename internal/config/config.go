// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Defaults
const (
	DefaultPort         = 5000
	DefaultModel        = "gemini-1.5-flash"
	DefaultRetries      = 1
	DefaultModelTimeout = 60 * time.Second
)

// DefaultAllowedOrigins are the local frontend dev servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
}

// Config is the process configuration for the API server and CLI.
type Config struct {
	Port           int
	DatabaseURL    string
	LogMode        string
	AllowedOrigins []string
	AI             AIConfig
	OTel           OTelConfig
}

// AIConfig selects and tunes the model provider.
type AIConfig struct {
	Provider        string // gemini or anthropic
	Model           string // overrides every tier when set
	GeminiAPIKey    string
	AnthropicAPIKey string
	Mode            string // strict or degraded
	Retries         int
	RetryBackoff    time.Duration
	ModelTimeout    time.Duration
}

// OTelConfig controls tracing.
type OTelConfig struct {
	Enabled     bool
	Exporter    string // stdout or otlp
	Endpoint    string
	ServiceName string
}

// APIKey returns the credential for the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// Load reads the configuration from the environment.
// Only malformed values are errors; required settings are checked by Validate.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: envString("DATABASE_URL", ""),
		LogMode:     envString("LOG_MODE", "development"),
	}

	var err error
	if cfg.Port, err = envInt("PORT", DefaultPort); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = envList("ALLOWED_ORIGINS", DefaultAllowedOrigins)
	if frontend := envString("FRONTEND_URL", ""); frontend != "" && !slices.Contains(cfg.AllowedOrigins, frontend) {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, frontend)
	}

	cfg.AI = AIConfig{
		Provider:        strings.ToLower(envString("AI_PROVIDER", "gemini")),
		Model:           envString("AI_MODEL", ""),
		GeminiAPIKey:    envString("GEMINI_API_KEY", ""),
		AnthropicAPIKey: envString("ANTHROPIC_API_KEY", ""),
		Mode:            strings.ToLower(envString("AI_MODE", "strict")),
	}
	if cfg.AI.Retries, err = envInt("AI_RETRIES", DefaultRetries); err != nil {
		return nil, err
	}
	if cfg.AI.RetryBackoff, err = envDuration("AI_RETRY_BACKOFF", 0); err != nil {
		return nil, err
	}
	if cfg.AI.ModelTimeout, err = envDuration("AI_MODEL_TIMEOUT", DefaultModelTimeout); err != nil {
		return nil, err
	}

	cfg.OTel = OTelConfig{
		Exporter:    strings.ToLower(envString("OTEL_EXPORTER", "stdout")),
		Endpoint:    envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName: envString("OTEL_SERVICE_NAME", "career-coach"),
	}
	if cfg.OTel.Enabled, err = envBool("OTEL_ENABLED", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	switch c.AI.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: AI_PROVIDER must be gemini or anthropic, got %q", c.AI.Provider)
	}
	switch c.AI.Mode {
	case "strict", "degraded":
	default:
		return fmt.Errorf("config error: AI_MODE must be strict or degraded, got %q", c.AI.Mode)
	}
	if c.AI.Retries < 0 {
		return fmt.Errorf("config error: AI_RETRIES must be non-negative")
	}
	if c.AI.RetryBackoff < 0 || c.AI.ModelTimeout < 0 {
		return fmt.Errorf("config error: AI_RETRY_BACKOFF and AI_MODEL_TIMEOUT must be non-negative")
	}
	switch c.OTel.Exporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("config error: OTEL_EXPORTER must be stdout or otlp, got %q", c.OTel.Exporter)
	}
	return nil
}

// RequireDatabase reports an error when DATABASE_URL is missing.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}
