package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	trustforge "github.com/alnah/go-trustforge"
	"github.com/alnah/go-trustforge/internal/config"
)

// defaultConfigName is looked up when neither --config nor
// TRUSTFORGE_CONFIG is set. Its absence is not an error.
const defaultConfigName = "trustforge"

// loadConfig resolves project settings: the named config file (flag, then
// TRUSTFORGE_CONFIG) or an optional trustforge.yaml, with environment
// variables applied on top.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
	} else {
		cfg, err = config.LoadConfig(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.DefaultConfig(), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.OutDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.engine != "" {
		cfg.Engine = strings.ToLower(flags.engine)
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.assetPath != "" {
		cfg.AssetPath = flags.assetPath
	}
	if flags.dateFormat != "" {
		cfg.DateFormat = flags.dateFormat
	}
	if flags.deepHeadings != "" {
		cfg.DeepHeadings = strings.ToLower(flags.deepHeadings)
	}
	if flags.footer != "" {
		cfg.Footer = flags.footer
	}
	if flags.logLevel != "" {
		cfg.LogLevel = strings.ToLower(flags.logLevel)
	}
}

// rendererOptions translates validated settings into renderer options.
func rendererOptions(cfg *config.Config, logger *zap.Logger) ([]trustforge.Option, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	deep, err := trustforge.ParseDeepHeadings(cfg.DeepHeadings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	opts := []trustforge.Option{
		trustforge.WithLogger(logger),
		trustforge.WithEngine(cfg.Engine),
		trustforge.WithThemePath(cfg.Theme),
		trustforge.WithAssetPath(cfg.AssetPath),
		trustforge.WithDateFormat(cfg.DateFormat),
		trustforge.WithDeepHeadings(deep),
		trustforge.WithFooter(cfg.Footer),
	}
	if timeout > 0 {
		opts = append(opts, trustforge.WithTimeout(timeout))
	}
	return opts, nil
}

// newLogger builds the structured logger for a run. Verbose runs log at
// debug level in console format; other runs write JSON at the configured
// level, or errors only when quiet.
func newLogger(w io.Writer, level string, verbose, quiet bool) (*zap.Logger, error) {
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	case level == "":
		level = "warn"
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: logLevel: %v", config.ErrInvalidConfig, err)
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	if lvl.Level() == zapcore.DebugLevel {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}
