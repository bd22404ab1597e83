package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/alnah/go-trustforge/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadConfig - File, env and defaults
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit file with env on top", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "project.yaml")
		writeFile(t, path, "theme: themes/file.yaml\nengine: xelatex\nfooter: Internal\n")

		cfg, err := loadConfig(path, &envConfig{Engine: "chrome"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		if cfg.Theme != "themes/file.yaml" {
			t.Errorf("Theme = %q, want themes/file.yaml", cfg.Theme)
		}
		if cfg.Engine != config.EngineChrome {
			t.Errorf("Engine = %q, env should win over the file", cfg.Engine)
		}
		if cfg.Footer != "Internal" {
			t.Errorf("Footer = %q, want Internal", cfg.Footer)
		}
	})

	t.Run("config path from env", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "env.yaml")
		writeFile(t, path, "outDir: from-env-config\n")

		cfg, err := loadConfig("", &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.OutDir != "from-env-config" {
			t.Errorf("OutDir = %q, want from-env-config", cfg.OutDir)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field is a parse error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "colour: red\n")

		_, err := loadConfig(path, &envConfig{})
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeRenderFlags - Flags over config
// ---------------------------------------------------------------------------

func TestMergeRenderFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeRenderFlags(&renderFlags{
			output:       "dist",
			workers:      3,
			timeout:      "45s",
			engine:       "CHROME",
			theme:        "themes/acme.yaml",
			assetPath:    "custom",
			dateFormat:   "long",
			deepHeadings: "Text",
			footer:       "Confidential",
			logLevel:     "Info",
		}, cfg)

		want := config.DefaultConfig()
		want.OutDir = "dist"
		want.Workers = 3
		want.Timeout = "45s"
		want.Engine = config.EngineChrome
		want.Theme = "themes/acme.yaml"
		want.AssetPath = "custom"
		want.DateFormat = "long"
		want.DeepHeadings = config.DeepHeadingsText
		want.Footer = "Confidential"
		want.LogLevel = "info"
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("mergeRenderFlags() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Footer = "From file"
		mergeRenderFlags(&renderFlags{}, cfg)

		want := config.DefaultConfig()
		want.Footer = "From file"
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("mergeRenderFlags() mismatch (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRendererOptions
// ---------------------------------------------------------------------------

func TestRendererOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		opts, err := rendererOptions(config.DefaultConfig(), zap.NewNop())
		if err != nil {
			t.Fatalf("rendererOptions() error = %v", err)
		}
		// logger, engine, theme, assets, date, headings, footer, timeout
		if len(opts) != 8 {
			t.Errorf("len(opts) = %d, want 8", len(opts))
		}
	})

	t.Run("no timeout leaves the renderer default", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Timeout = ""
		opts, err := rendererOptions(cfg, zap.NewNop())
		if err != nil {
			t.Fatalf("rendererOptions() error = %v", err)
		}
		if len(opts) != 7 {
			t.Errorf("len(opts) = %d, want 7", len(opts))
		}
	})

	t.Run("invalid deep headings", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.DeepHeadings = "flatten"
		_, err := rendererOptions(cfg, zap.NewNop())
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewLogger - Levels and encoders
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantWarn  bool
		wantError bool
	}{
		{"default is warn", "", false, false, false, true, true},
		{"configured info", "info", false, false, false, true, true},
		{"verbose forces debug", "error", true, false, true, true, true},
		{"quiet keeps errors only", "debug", false, true, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := newLogger(&buf, tt.level, tt.verbose, tt.quiet)
			if err != nil {
				t.Fatalf("newLogger() error = %v", err)
			}

			logger.Debug("debug-line")
			logger.Warn("warn-line")
			logger.Error("error-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn-line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(out, "error-line"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
		})
	}

	t.Run("json outside debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := newLogger(&buf, "warn", false, false)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Warn("logo not found", zap.String("path", "brand/logo.png"))

		assertContains(t, "log line", buf.String(), `"msg":"logo not found"`)
		assertContains(t, "log line", buf.String(), `"path":"brand/logo.png"`)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		_, err := newLogger(&bytes.Buffer{}, "loud", false, false)
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}
