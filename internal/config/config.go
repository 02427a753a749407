// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PROMPTPRO_"

// Config represents the complete promptpro configuration.
type Config struct {
	Version string `toml:"version" yaml:"version" json:"version"`

	API     APIConfig     `toml:"api" yaml:"api" json:"api" envPrefix:"API_"`
	Storage StorageConfig `toml:"storage" yaml:"storage" json:"storage" envPrefix:"STORAGE_"`
	UI      UIConfig      `toml:"ui" yaml:"ui" json:"ui" envPrefix:"UI_"`
	Site    SiteConfig    `toml:"site" yaml:"site" json:"site" envPrefix:"SITE_"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging" envPrefix:"LOG_"`
}

// APIConfig configures the remote optimizer API.
type APIConfig struct {
	// BaseURL is the origin serving /api/* (PROMPTPRO_API_URL)
	BaseURL string `toml:"base_url" yaml:"base_url" json:"base_url" env:"URL"`
	// TimeoutSecs bounds every request
	TimeoutSecs int `toml:"timeout_secs" yaml:"timeout_secs" json:"timeout_secs" env:"TIMEOUT_SECS"`
	// RateLimit is the client-side ceiling in requests per second; 0 disables it
	RateLimit float64 `toml:"rate_limit" yaml:"rate_limit" json:"rate_limit" env:"RATE_LIMIT"`
	// Burst is the limiter bucket size
	Burst int `toml:"burst" yaml:"burst" json:"burst" env:"BURST"`
}

// StorageConfig configures durable client storage for the session.
type StorageConfig struct {
	// Backend is "file" (JSON) or "sqlite"
	Backend string `toml:"backend" yaml:"backend" json:"backend" env:"BACKEND"`
	// Dir holds the storage file; empty means the config directory
	Dir string `toml:"dir" yaml:"dir" json:"dir" env:"DIR"`
	// Watch reloads the session when another process logs in or out
	Watch bool `toml:"watch" yaml:"watch" json:"watch" env:"WATCH"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" yaml:"theme" json:"theme" env:"THEME"`
	// DefaultContext is the context selected at startup
	DefaultContext string `toml:"default_context" yaml:"default_context" json:"default_context" env:"DEFAULT_CONTEXT"`
	// SplitPercent is the initial width of the input pane
	SplitPercent float64 `toml:"split_percent" yaml:"split_percent" json:"split_percent" env:"SPLIT_PERCENT"`
	// Mouse enables divider dragging and click targets
	Mouse bool `toml:"mouse" yaml:"mouse" json:"mouse" env:"MOUSE"`
	// RenderMarkdown renders the strategy section with glamour
	RenderMarkdown bool `toml:"render_markdown" yaml:"render_markdown" json:"render_markdown" env:"RENDER_MARKDOWN"`
}

// SiteConfig configures the marketing site server.
type SiteConfig struct {
	Addr                string `toml:"addr" yaml:"addr" json:"addr" env:"ADDR"`
	URL                 string `toml:"url" yaml:"url" json:"url" env:"URL"`
	Brand               string `toml:"brand" yaml:"brand" json:"brand" env:"BRAND"`
	ShutdownTimeoutSecs int    `toml:"shutdown_timeout_secs" yaml:"shutdown_timeout_secs" json:"shutdown_timeout_secs" env:"SHUTDOWN_TIMEOUT_SECS"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level" yaml:"level" json:"level" env:"LEVEL"`
	// Format is "json" or "console"
	Format string `toml:"format" yaml:"format" json:"format" env:"FORMAT"`
	// File receives TUI logs; empty means <config dir>/logs/promptpro.log
	File string `toml:"file" yaml:"file" json:"file" env:"FILE"`
}

// Timeout returns the API timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown window.
func (s SiteConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "https://www.promptvita.com",
			TimeoutSecs: 30,
			RateLimit:   2,
			Burst:       4,
		},
		Storage: StorageConfig{
			Backend: "file",
			Watch:   true,
		},
		UI: UIConfig{
			Theme:          "auto",
			DefaultContext: "general",
			SplitPercent:   50,
			Mouse:          true,
			RenderMarkdown: true,
		},
		Site: SiteConfig{
			Addr:                ":8080",
			URL:                 "https://www.promptvita.com",
			Brand:               "PromptVita",
			ShutdownTimeoutSecs: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the promptpro configuration directory.
// PROMPTPRO_HOME overrides the default of ~/.promptpro.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".promptpro"), nil
}

// ConfigPath returns the path of the config file with the given extension.
func ConfigPath(ext string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config."+ext), nil
}

// EnsureConfigDir ensures the config directory exists with private permissions.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions forces config files to 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// searchOrder lists config file extensions in precedence order.
var searchOrder = []string{"toml", "yaml", "json"}

// Load loads configuration from the first config file found, then applies
// .env and environment overrides, defaults and validation.
func Load() (*Config, error) {
	cfg := Default()

	for _, ext := range searchOrder {
		path, err := ConfigPath(ext)
		if err != nil {
			break
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
		break
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file with full validation.
// The format is chosen by extension; unknown extensions are read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg)
}

func decodeFile(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides loads ./.env (without clobbering variables already set)
// and applies PROMPTPRO_* overrides. Examples:
//   - PROMPTPRO_API_URL
//   - PROMPTPRO_API_TIMEOUT_SECS
//   - PROMPTPRO_STORAGE_BACKEND
//   - PROMPTPRO_UI_DEFAULT_CONTEXT
//   - PROMPTPRO_SITE_ADDR
//   - PROMPTPRO_LOG_LEVEL
func (c *Config) ApplyEnvOverrides() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// SetDefaults fills zero values left by partial config files.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	c.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.API.Burst <= 0 {
		c.API.Burst = d.API.Burst
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.DefaultContext == "" {
		c.UI.DefaultContext = d.UI.DefaultContext
	}
	if c.UI.SplitPercent == 0 {
		c.UI.SplitPercent = d.UI.SplitPercent
	}
	if c.Site.Addr == "" {
		c.Site.Addr = d.Site.Addr
	}
	c.Site.URL = strings.TrimSuffix(c.Site.URL, "/")
	if c.Site.URL == "" {
		c.Site.URL = d.Site.URL
	}
	if c.Site.Brand == "" {
		c.Site.Brand = d.Site.Brand
	}
	if c.Site.ShutdownTimeoutSecs <= 0 {
		c.Site.ShutdownTimeoutSecs = d.Site.ShutdownTimeoutSecs
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("'%s' is not an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "api.rate_limit", Message: "must not be negative"})
	}

	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Storage.Backend),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if !model.IsKnownContext(c.UI.DefaultContext) {
		errs = append(errs, ValidationError{
			Field:   "ui.default_context",
			Message: fmt.Sprintf("unknown context '%s'", c.UI.DefaultContext),
		})
	}
	if c.UI.SplitPercent < 20 || c.UI.SplitPercent > 80 {
		errs = append(errs, ValidationError{
			Field:   "ui.split_percent",
			Message: fmt.Sprintf("%.0f is outside 20-80", c.UI.SplitPercent),
		})
	}

	if u, err := url.Parse(c.Site.URL); err != nil || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "site.url",
			Message: fmt.Sprintf("'%s' is not an absolute URL", c.Site.URL),
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, console", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE AND DISPLAY
// =============================================================================

// Save writes cfg to ~/.promptpro/config.toml with 0600 permissions.
func Save(cfg *Config) (string, error) {
	path, err := ConfigPath("toml")
	if err != nil {
		return "", err
	}
	data, err := cfg.Marshal("toml")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("# promptpro configuration file\n")
	buf.WriteString("# Environment variables (PROMPTPRO_*) take precedence over this file.\n\n")
	buf.Write(data)

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// Marshal encodes the config as toml, yaml or json.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "toml", "":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// String returns the config as indented JSON. Nothing in Config is secret;
// session tokens live in storage, not here.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first use.
// A config that fails to load falls back to defaults with a warning.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
