// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-preview/internal/templates"
)

// Surface names accepted by the measure_surface setting.
const (
	SurfaceChrome   = "chrome"
	SurfaceEstimate = "estimate"
)

// Defaults applied by MergeWithDefaults when a field is left unset.
const (
	DefaultDisplayWidth   = 595
	DefaultSettleWindowMS = 150
	DefaultScrollMS       = 16
	DefaultMeasureTimeout = 20
	DefaultCacheTTLHours  = 24
	DefaultPort           = 8080
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Template string `json:"template,omitempty"` // Built-in template ID
	Schema   string `json:"schema,omitempty"`   // Path to a template schema JSON file (overrides template)
	Data     string `json:"data,omitempty"`     // Path to resume data JSON file

	// Preview geometry and timing
	DisplayWidth   float64 `json:"display_width,omitempty"`       // Rendered page width in CSS pixels
	SettleWindowMS int     `json:"settle_window_ms,omitempty"`    // Quiet period before a height is committed
	ScrollMS       int     `json:"scroll_throttle_ms,omitempty"`  // Minimum interval between scroll updates
	MeasureTimeout int     `json:"measure_timeout_sec,omitempty"` // Upper bound for a single measurement

	// Measurement surface
	Surface   string `json:"measure_surface,omitempty"` // "chrome" or "estimate"
	Headless  *bool  `json:"headless,omitempty"`        // Run Chrome headless (default true)
	NoSandbox bool   `json:"no_sandbox,omitempty"`      // Pass --no-sandbox to Chrome

	// Height cache
	RedisAddr     string `json:"redis_addr,omitempty"`      // Redis address; empty uses the in-memory cache
	RedisPassword string `json:"redis_password,omitempty"`  // Redis password
	RedisDB       int    `json:"redis_db,omitempty"`        // Redis database index
	CacheTTLHours int    `json:"cache_ttl_hours,omitempty"` // Height cache entry lifetime

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Template != "" {
		if _, ok := templates.Get(c.Template); !ok {
			return fmt.Errorf("config error: unknown template %q", c.Template)
		}
	}

	switch c.Surface {
	case "", SurfaceChrome, SurfaceEstimate:
	default:
		return fmt.Errorf("config error: 'measure_surface' must be %q or %q", SurfaceChrome, SurfaceEstimate)
	}

	// Validate numeric ranges
	if c.DisplayWidth < 0 {
		return fmt.Errorf("config error: 'display_width' must be positive")
	}
	if c.SettleWindowMS < 0 {
		return fmt.Errorf("config error: 'settle_window_ms' must be non-negative")
	}
	if c.ScrollMS < 0 {
		return fmt.Errorf("config error: 'scroll_throttle_ms' must be non-negative")
	}
	if c.MeasureTimeout < 0 {
		return fmt.Errorf("config error: 'measure_timeout_sec' must be non-negative")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	if c.Schema != "" {
		if _, err := os.Stat(c.Schema); os.IsNotExist(err) {
			return fmt.Errorf("config error: schema file not found: %s", c.Schema)
		}
	}

	if c.Data != "" {
		if _, err := os.Stat(c.Data); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.Data)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.Data == "" {
		result.Data = defaults.Data
	}
	if result.Surface == "" {
		result.Surface = defaults.Surface
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}

	// Numeric fields: use default if zero, then the built-in default
	result.DisplayWidth = firstPositive(result.DisplayWidth, defaults.DisplayWidth, DefaultDisplayWidth)
	result.SettleWindowMS = int(firstPositive(float64(result.SettleWindowMS), float64(defaults.SettleWindowMS), DefaultSettleWindowMS))
	result.ScrollMS = int(firstPositive(float64(result.ScrollMS), float64(defaults.ScrollMS), DefaultScrollMS))
	result.MeasureTimeout = int(firstPositive(float64(result.MeasureTimeout), float64(defaults.MeasureTimeout), DefaultMeasureTimeout))
	result.CacheTTLHours = int(firstPositive(float64(result.CacheTTLHours), float64(defaults.CacheTTLHours), DefaultCacheTTLHours))
	result.Port = int(firstPositive(float64(result.Port), float64(defaults.Port), DefaultPort))
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}

	if result.Template == "" {
		result.Template = templates.DefaultID
	}
	if result.Surface == "" {
		result.Surface = SurfaceChrome
	}
	if result.Headless == nil {
		result.Headless = defaults.Headless
	}

	// Plain bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// IsHeadless reports the effective headless setting.
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

// SettleWindow returns the settle window as a duration.
func (c *Config) SettleWindow() time.Duration {
	return time.Duration(c.SettleWindowMS) * time.Millisecond
}

// ScrollInterval returns the scroll throttle interval as a duration.
func (c *Config) ScrollInterval() time.Duration {
	return time.Duration(c.ScrollMS) * time.Millisecond
}

// Timeout returns the measurement timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.MeasureTimeout) * time.Second
}

// CacheTTL returns the height cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
