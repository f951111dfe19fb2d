// Package config provides configuration loading and validation for the scorer.
package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sheet-scorer/internal/admin"
	"github.com/jonathan/sheet-scorer/internal/scoring"
)

// Config represents the scorer configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Answer keys
	Registry     map[string]string `json:"registry,omitempty" validate:"omitempty,dive,keys,required,endkeys,required,url"` // Administration key -> answer key URL
	RegistryFile string            `json:"registry_file,omitempty"`                                                         // Path to a JSON registry merged over Registry

	// Layout
	DateRow  int    `json:"date_row,omitempty" validate:"gte=0"`                      // Header row holding the test date
	ShiftRow int    `json:"shift_row,omitempty" validate:"gte=0"`                     // Header row holding the test time
	Mode     string `json:"mode,omitempty" validate:"omitempty,oneof=strict lenient"` // Period validation mode
	Sentinel string `json:"sentinel,omitempty"`                                       // Marked value meaning "not attempted"

	// Subject bands
	BandSize   int      `json:"band_size,omitempty" validate:"gte=0"`
	BandLabels []string `json:"band_labels,omitempty" validate:"omitempty,dive,required"`

	// Fetching
	Timeout    string `json:"timeout,omitempty"`     // Go duration applied to each network call
	UserAgent  string `json:"user_agent,omitempty"`  // User agent for HTTP requests
	UseBrowser bool   `json:"use_browser,omitempty"` // Render response sheets in a headless browser

	// Behavior
	Port    int  `json:"port,omitempty" validate:"gte=0,lte=65535"`
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the built-in configuration: the published registry,
// three 25-question bands and lenient period handling.
func Default() Config {
	bands := scoring.DefaultBands()
	layout := admin.DefaultLayout()
	return Config{
		Registry:   DefaultRegistry(),
		DateRow:    layout.DateRow,
		ShiftRow:   layout.ShiftRow,
		Mode:       string(admin.ModeLenient),
		Sentinel:   "--",
		BandSize:   bands.Size,
		BandLabels: bands.Labels,
		Timeout:    "30s",
		Port:       8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadRegistry loads an administration registry from a flat JSON object.
func LoadRegistry(path string) (map[string]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	var registry map[string]string
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}
	return registry, nil
}

func readFile(path string) ([]byte, error) {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	return os.ReadFile(path)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.DateRow == c.ShiftRow && (c.DateRow != 0 || c.ShiftRow != 0) {
		return fmt.Errorf("config error: 'date_row' and 'shift_row' must differ")
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'timeout' must be positive")
		}
	}

	if c.RegistryFile != "" {
		if _, err := os.Stat(c.RegistryFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: registry file not found: %s", c.RegistryFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Registry) == 0 {
		result.Registry = maps.Clone(defaults.Registry)
	}
	if result.RegistryFile == "" {
		result.RegistryFile = defaults.RegistryFile
	}
	if result.DateRow == 0 && result.ShiftRow == 0 {
		result.DateRow = defaults.DateRow
		result.ShiftRow = defaults.ShiftRow
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.Sentinel == "" {
		result.Sentinel = defaults.Sentinel
	}
	if result.BandSize == 0 {
		result.BandSize = defaults.BandSize
	}
	if len(result.BandLabels) == 0 {
		result.BandLabels = append([]string(nil), defaults.BandLabels...)
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolvedRegistry returns the inline registry with the registry file merged over it.
func (c *Config) ResolvedRegistry() (map[string]string, error) {
	registry := maps.Clone(c.Registry)
	if registry == nil {
		registry = map[string]string{}
	}
	if c.RegistryFile == "" {
		return registry, nil
	}

	fromFile, err := LoadRegistry(c.RegistryFile)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	for key, u := range fromFile {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("config error: registry file has an empty key")
		}
		if err := validate.Var(u, "required,url"); err != nil {
			return nil, fmt.Errorf("config error: registry entry %s: invalid URL %q", key, u)
		}
		registry[key] = u
	}
	return registry, nil
}

// Bands returns the subject band configuration.
func (c *Config) Bands() scoring.BandConfig {
	return scoring.BandConfig{Size: c.BandSize, Labels: append([]string(nil), c.BandLabels...)}
}

// HeaderLayout returns the header row offsets.
func (c *Config) HeaderLayout() admin.Layout {
	return admin.Layout{DateRow: c.DateRow, ShiftRow: c.ShiftRow}
}

// ResolutionMode returns the period validation mode.
func (c *Config) ResolutionMode() admin.Mode {
	return admin.Mode(c.Mode)
}

// FetchTimeout returns the per-call network timeout, or 0 when unset or invalid.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}
