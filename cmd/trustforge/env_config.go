package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-trustforge/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TRUSTFORGE_CONFIG: config file name or path
	Theme      string        // TRUSTFORGE_THEME: theme YAML path
	OutDir     string        // TRUSTFORGE_OUT: output directory
	LogLevel   string        // TRUSTFORGE_LOG: debug, info, warn, error
	Engine     string        // TRUSTFORGE_ENGINE: xelatex or chrome
	Timeout    time.Duration // TRUSTFORGE_TIMEOUT: per-run engine timeout
	Workers    int           // TRUSTFORGE_WORKERS: parallel workers
}

// knownEnvVars lists valid TRUSTFORGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TRUSTFORGE_CONFIG":  true,
	"TRUSTFORGE_THEME":   true,
	"TRUSTFORGE_OUT":     true,
	"TRUSTFORGE_LOG":     true,
	"TRUSTFORGE_ENGINE":  true,
	"TRUSTFORGE_TIMEOUT": true,
	"TRUSTFORGE_WORKERS": true,
	// Read by doctor only
	"TRUSTFORGE_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TRUSTFORGE_CONFIG"),
		Theme:      os.Getenv("TRUSTFORGE_THEME"),
		OutDir:     os.Getenv("TRUSTFORGE_OUT"),
		LogLevel:   os.Getenv("TRUSTFORGE_LOG"),
		Engine:     os.Getenv("TRUSTFORGE_ENGINE"),
	}

	if timeout := os.Getenv("TRUSTFORGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TRUSTFORGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TRUSTFORGE_* variables.
// Helps catch typos like TRUSTFORGE_THEMES instead of TRUSTFORGE_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TRUSTFORGE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable replaces the file or default value; flags are merged
// afterwards. This ensures: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.OutDir != "" {
		cfg.OutDir = env.OutDir
	}
	if env.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(env.LogLevel)
	}
	if env.Engine != "" {
		cfg.Engine = strings.ToLower(env.Engine)
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
