package main

import (
	"context"
	"errors"
	"os"

	trustforge "github.com/alnah/go-trustforge"
	"github.com/alnah/go-trustforge/internal/config"
	"github.com/alnah/go-trustforge/internal/dateutil"
	"github.com/alnah/go-trustforge/internal/export"
)

// Exit codes for the trustforge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful run
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, front matter, theme or template
	ExitIO       = 3 // File not found, permission denied
	ExitCompiler = 4 // TeX engine or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, trustforge.ErrCompile) ||
		errors.Is(err, trustforge.ErrCompilerNotFound) ||
		errors.Is(err, trustforge.ErrBrowserConnect) ||
		errors.Is(err, trustforge.ErrPageCreate) ||
		errors.Is(err, trustforge.ErrPageLoad) ||
		errors.Is(err, trustforge.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitCompiler
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, trustforge.ErrMissingFrontMatter) ||
		errors.Is(err, trustforge.ErrFrontMatter) ||
		errors.Is(err, trustforge.ErrEmptyBody) ||
		errors.Is(err, trustforge.ErrTemplateIntegrity) ||
		errors.Is(err, trustforge.ErrUnresolvedPlaceholder) ||
		errors.Is(err, trustforge.ErrTemplateNotFound) ||
		errors.Is(err, trustforge.ErrThemeNotFound) ||
		errors.Is(err, trustforge.ErrThemeParse) ||
		errors.Is(err, trustforge.ErrInvalidTheme) ||
		errors.Is(err, trustforge.ErrInvalidEngine) ||
		errors.Is(err, trustforge.ErrInvalidAssetPath) ||
		errors.Is(err, trustforge.ErrInvalidDateFormat) ||
		errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, export.ErrInvalidRisk) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrPolicyExists) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, trustforge.ErrAssetNotFound) ||
		errors.Is(err, export.ErrExport) ||
		errors.Is(err, ErrReadPolicy) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
