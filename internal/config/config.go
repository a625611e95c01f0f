package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// APIConfig describes how to reach the blog service.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// CacheConfig tunes the query cache.
type CacheConfig struct {
	StaleSeconds int `toml:"stale_seconds"`
	GCMinutes    int `toml:"gc_minutes"`
	RetryCount   int `toml:"retry_count"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int    `toml:"port"`
	AutoOpenBrowser bool   `toml:"auto_open_browser"`
	PublicURL       string `toml:"public_url"`
}

// UIConfig holds presentation settings shared by the web and terminal views.
type UIConfig struct {
	ToastSeconds int `toml:"toast_seconds"`
}

const (
	defaultBaseURL           = "http://localhost:3001"
	defaultTimeoutSeconds    = 10
	defaultRequestsPerSecond = 20
	defaultGCMinutes         = 5
	defaultRetryCount        = 3
	defaultPort              = 8080
	defaultToastSeconds      = 4
)

const defaultConfigContent = `[api]
base_url = "http://localhost:3001"   # Blog service root (or set INKWELL_API_URL)
timeout_seconds = 10
requests_per_second = 20             # 0 disables throttling

[cache]
stale_seconds = 0                    # 0 revalidates on every read
gc_minutes = 5                       # Unused entries are dropped after this
retry_count = 3                      # 0 disables retries

[server]
port = 8080
auto_open_browser = true
public_url = ""                      # Base for share links (or set INKWELL_PUBLIC_URL)

[ui]
toast_seconds = 4
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("ignoring unknown config keys", "keys", fmt.Sprint(undecoded))
	}

	// Explicit values are checked before defaults fill the zero values, so
	// "port = 0" is an error rather than silently becoming 8080.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// DefaultPath is where the config lives when --config is not given:
// $XDG_CONFIG_HOME/inkwell/config.toml, falling back to ./config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "inkwell", "config.toml")
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("api", "timeout_seconds") && cfg.API.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid api.timeout_seconds %d: must be >= 1", cfg.API.TimeoutSeconds)
	}
	if md.IsDefined("cache", "gc_minutes") && cfg.Cache.GCMinutes < 1 {
		return fmt.Errorf("invalid cache.gc_minutes %d: must be >= 1", cfg.Cache.GCMinutes)
	}
	if md.IsDefined("ui", "toast_seconds") && cfg.UI.ToastSeconds < 1 {
		return fmt.Errorf("invalid ui.toast_seconds %d: must be >= 1", cfg.UI.ToastSeconds)
	}
	return nil
}

// applyDefaults fills zero values. Settings where zero is meaningful
// (requests_per_second, retry_count) only get a default when absent.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if !md.IsDefined("api", "requests_per_second") {
		cfg.API.RequestsPerSecond = defaultRequestsPerSecond
	}
	if cfg.Cache.GCMinutes == 0 {
		cfg.Cache.GCMinutes = defaultGCMinutes
	}
	if !md.IsDefined("cache", "retry_count") {
		cfg.Cache.RetryCount = defaultRetryCount
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if !md.IsDefined("server", "auto_open_browser") {
		cfg.Server.AutoOpenBrowser = true
	}
	if cfg.UI.ToastSeconds == 0 {
		cfg.UI.ToastSeconds = defaultToastSeconds
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INKWELL_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("INKWELL_PUBLIC_URL"); v != "" {
		cfg.Server.PublicURL = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if err := validateURL("api.base_url", cfg.API.BaseURL); err != nil {
		return err
	}
	if cfg.Server.PublicURL != "" {
		if err := validateURL("server.public_url", cfg.Server.PublicURL); err != nil {
			return err
		}
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}
	if cfg.API.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid api.requests_per_second %g: must be >= 0", cfg.API.RequestsPerSecond)
	}
	if cfg.Cache.StaleSeconds < 0 {
		return fmt.Errorf("invalid cache.stale_seconds %d: must be >= 0", cfg.Cache.StaleSeconds)
	}
	if cfg.Cache.RetryCount < 0 || cfg.Cache.RetryCount > 10 {
		return fmt.Errorf("invalid cache.retry_count %d: must be between 0 and 10", cfg.Cache.RetryCount)
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", field, raw)
	}
	return nil
}

// Timeout is the per-request timeout for the blog service.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StaleTime is how long fetched data counts as fresh.
func (c CacheConfig) StaleTime() time.Duration {
	return time.Duration(c.StaleSeconds) * time.Second
}

// GCTime is how long unused entries are kept.
func (c CacheConfig) GCTime() time.Duration {
	return time.Duration(c.GCMinutes) * time.Minute
}

// Retries converts retry_count to the query cache convention, where zero
// means "default" and a negative count disables retries.
func (c CacheConfig) Retries() int {
	if c.RetryCount == 0 {
		return -1
	}
	return c.RetryCount
}

// ToastDuration is how long the "Link copied" notice stays visible.
func (c UIConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// Addr is the local listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("localhost:%d", c.Port)
}

// ShareBase is the origin used in share links: public_url when set,
// otherwise the local server address.
func (c ServerConfig) ShareBase() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	return "http://" + c.Addr()
}
