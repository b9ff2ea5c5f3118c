// Package config handles configuration for redactchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

// Environment overrides
const (
	EnvHome      = "REDACTCHAT_HOME"
	EnvRedactURL = "REDACTCHAT_REDACT_URL"
	EnvQueryURL  = "REDACTCHAT_QUERY_URL"
	EnvTimeout   = "REDACTCHAT_TIMEOUT"
	EnvProxy     = "REDACTCHAT_PROXY"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Endpoints holds the two collaborator URLs the pipeline talks to
type Endpoints struct {
	Redact string `json:"redact"`
	Query  string `json:"query"`
}

// Validate checks that both endpoints are absolute http(s) URLs
func (e Endpoints) Validate() error {
	if err := validateURL("redact", e.Redact); err != nil {
		return err
	}
	return validateURL("query", e.Query)
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: %s endpoint is empty", apierrors.ErrEndpoint, name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s endpoint: %v", apierrors.ErrEndpoint, name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s endpoint must be http or https, got %q", apierrors.ErrEndpoint, name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %s endpoint has no host: %q", apierrors.ErrEndpoint, name, raw)
	}
	return nil
}

// Config represents the user configuration
type Config struct {
	Endpoints Endpoints `json:"endpoints"`
	// TimeoutSeconds bounds each collaborator request.
	TimeoutSeconds int `json:"timeout_seconds"`
	// Proxy is an optional proxy URL for both collaborators.
	Proxy string `json:"proxy,omitempty"`
	// Headers are added to every collaborator request.
	Headers map[string]string `json:"headers,omitempty"`
	// Verbose lowers the log level to debug.
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	LogFile         string         `json:"log_file,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoints: Endpoints{
			Redact: models.DefaultRedactEndpoint,
			Query:  models.DefaultQueryEndpoint,
		},
		TimeoutSeconds:  60,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "redactor",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// Timeout returns TimeoutSeconds as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the fields the pipeline depends on
func (c Config) Validate() error {
	if err := c.Endpoints.Validate(); err != nil {
		return err
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("invalid proxy: %w", err)
		}
	}
	return nil
}

// ApplyEnvOverrides replaces fields with REDACTCHAT_* environment values
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvRedactURL); v != "" {
		c.Endpoints.Redact = v
	}
	if v := os.Getenv(EnvQueryURL); v != "" {
		c.Endpoints.Query = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv(EnvProxy); v != "" {
		c.Proxy = v
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".redactchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path, defaulting to logs/redactchat.log
// under the config directory
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs", "redactchat.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
