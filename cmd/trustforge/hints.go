package main

import (
	"context"
	"errors"
	"os"

	trustforge "github.com/alnah/go-trustforge"
	"github.com/alnah/go-trustforge/internal/config"
	"github.com/alnah/go-trustforge/internal/hints"
)

// hintFor returns an actionable suffix for err, or "".
func hintFor(err error) string {
	var compileErr *trustforge.CompileError
	switch {
	case errors.Is(err, trustforge.ErrCompilerNotFound):
		return hints.ForCompilerNotFound(trustforge.EngineXeLaTeX)
	case errors.As(err, &compileErr):
		return hints.ForCompileLog(compileErr.LogPath)
	case errors.Is(err, trustforge.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, trustforge.ErrMissingFrontMatter),
		errors.Is(err, trustforge.ErrFrontMatter):
		return hints.ForFrontMatter()
	case errors.Is(err, trustforge.ErrThemeNotFound),
		errors.Is(err, trustforge.ErrThemeParse),
		errors.Is(err, trustforge.ErrInvalidTheme):
		return hints.ForTheme()
	case errors.Is(err, trustforge.ErrTemplateIntegrity),
		errors.Is(err, trustforge.ErrUnresolvedPlaceholder):
		return hints.ForTemplate()
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}
