package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-trustforge/internal/dateutil"
	"github.com/alnah/go-trustforge/internal/fileutil"
	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxFooterLength = 500 // Free-form footer text
	MaxLevelLength  = 10  // "debug", "error"
)

// Accepted enumerations.
const (
	EngineXeLaTeX = "xelatex"
	EngineChrome  = "chrome"

	DeepHeadingsCollapse = "collapse"
	DeepHeadingsText     = "text"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds project-wide publishing settings.
// Empty fields mean "use the built-in default".
type Config struct {
	Theme        string `yaml:"theme"`        // Theme YAML path (empty = themes/neutral.yaml, then embedded)
	OutDir       string `yaml:"outDir"`       // Output directory (empty = next to the source)
	LogLevel     string `yaml:"logLevel"`     // debug, info, warn, error
	Engine       string `yaml:"engine"`       // xelatex or chrome
	Timeout      string `yaml:"timeout"`      // Go duration per compile, e.g. "2m"
	AssetPath    string `yaml:"assetPath"`    // Directory overriding embedded templates
	DateFormat   string `yaml:"dateFormat"`   // last_reviewed display format or preset
	DeepHeadings string `yaml:"deepHeadings"` // collapse or text
	PoliciesDir  string `yaml:"policiesDir"`  // Source directory for batch and index
	IndexPath    string `yaml:"indexPath"`    // CSV index output
	Footer       string `yaml:"footer"`       // Title page footer when front matter has none
	Workers      int    `yaml:"workers"`      // 0 = auto
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		OutDir:       "out",
		LogLevel:     "warn",
		Engine:       EngineXeLaTeX,
		Timeout:      "2m",
		DateFormat:   dateutil.DefaultDateFormat,
		DeepHeadings: DeepHeadingsCollapse,
		PoliciesDir:  "policies",
		IndexPath:    filepath.Join("out", "policy_index.csv"),
	}
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}

// Validate checks enumerations, formats and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	paths := []struct{ field, value string }{
		{"theme", c.Theme},
		{"outDir", c.OutDir},
		{"assetPath", c.AssetPath},
		{"policiesDir", c.PoliciesDir},
		{"indexPath", c.IndexPath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("footer", c.Footer, MaxFooterLength); err != nil {
		return err
	}
	if err := validateFieldLength("logLevel", c.LogLevel, MaxLevelLength); err != nil {
		return err
	}

	if c.LogLevel != "" && !contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("%w: logLevel: invalid value %q (must be %s)", ErrInvalidConfig, c.LogLevel, strings.Join(logLevels, ", "))
	}

	switch strings.ToLower(c.Engine) {
	case "", EngineXeLaTeX, EngineChrome:
	default:
		return fmt.Errorf("%w: engine: invalid value %q (must be xelatex or chrome)", ErrInvalidConfig, c.Engine)
	}

	switch strings.ToLower(c.DeepHeadings) {
	case "", DeepHeadingsCollapse, DeepHeadingsText:
	default:
		return fmt.Errorf("%w: deepHeadings: invalid value %q (must be collapse or text)", ErrInvalidConfig, c.DeepHeadings)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.DateFormat != "" {
		if _, err := dateutil.Format(time.Time{}, c.DateFormat); err != nil {
			return fmt.Errorf("%w: dateFormat: %v", ErrInvalidConfig, err)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers: must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := yamlutil.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "trustforge", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then ~/.config/trustforge/, trying .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
