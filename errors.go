package trustforge

import (
	"errors"

	"github.com/alnah/go-trustforge/internal/assets"
	"github.com/alnah/go-trustforge/internal/dateutil"
	"github.com/alnah/go-trustforge/internal/frontmatter"
	"github.com/alnah/go-trustforge/internal/latex"
	"github.com/alnah/go-trustforge/internal/pipeline"
	"github.com/alnah/go-trustforge/internal/theme"
)

// Sentinel errors for library operations.
var (
	ErrEmptyBody        = errors.New("policy body cannot be empty")
	ErrInvalidEngine    = errors.New("invalid PDF engine")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
)

// Re-exported so callers can use errors.Is without importing internals.
var (
	// Front matter.
	ErrMissingFrontMatter = frontmatter.ErrMissingFrontMatter
	ErrFrontMatter        = frontmatter.ErrInvalidFrontMatter

	// Templates.
	ErrTemplateIntegrity     = latex.ErrTemplateIntegrity
	ErrUnresolvedPlaceholder = latex.ErrUnresolvedPlaceholder
	ErrTemplateNotFound      = assets.ErrTemplateNotFound
	ErrPageRender            = pipeline.ErrPageRender

	// Compiler.
	ErrCompile          = latex.ErrCompile
	ErrCompilerNotFound = latex.ErrCompilerNotFound

	// Themes.
	ErrThemeNotFound = theme.ErrThemeNotFound
	ErrThemeParse    = theme.ErrThemeParse
	ErrInvalidTheme  = theme.ErrInvalidTheme

	// HTML.
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Dates.
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat
)

// CompileError is returned when an engine pass fails. LogPath points at the
// engine log next to the .tex file.
type CompileError = latex.CompileError
