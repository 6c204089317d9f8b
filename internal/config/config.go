package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client and stub-server configuration
type Config struct {
	Env string `envconfig:"ENV" default:"development"`

	// Backend API configuration
	API APIConfig

	// Session storage configuration
	Session SessionConfig

	// Notification polling configuration
	Notify NotifyConfig

	// Stub server configuration
	Stub StubConfig
}

// APIConfig holds backend endpoint configuration
type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

// SessionConfig holds session storage configuration
type SessionConfig struct {
	// TokenPath is the fixed storage location of the bearer token.
	// Empty means the per-user default under the home directory.
	TokenPath string `envconfig:"SESSION_TOKEN_PATH"`
}

// ResolveTokenPath returns the configured token path, falling back to
// ~/.campusrate/session.
func (s SessionConfig) ResolveTokenPath() (string, error) {
	if s.TokenPath != "" {
		return s.TokenPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".campusrate", "session"), nil
}

// NotifyConfig holds notification polling configuration
type NotifyConfig struct {
	PollInterval time.Duration `envconfig:"NOTIFY_POLL_INTERVAL" default:"10s"`
}

// StubConfig holds development stub server configuration
type StubConfig struct {
	Port      string        `envconfig:"STUB_PORT" default:"8080"`
	JWTSecret string        `envconfig:"STUB_JWT_SECRET" default:"campusrate-dev-secret-not-for-production"`
	TokenTTL  time.Duration `envconfig:"STUB_TOKEN_TTL" default:"6h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CAMPUSRATE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
