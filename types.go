package trustforge

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-trustforge/internal/frontmatter"
	"github.com/alnah/go-trustforge/internal/latex"
	"github.com/alnah/go-trustforge/internal/markup"
	"github.com/alnah/go-trustforge/internal/theme"
)

// PDF engines.
const (
	EngineXeLaTeX = "xelatex"
	EngineChrome  = "chrome"
)

// DeepHeadingPolicy decides how headings of level 4 to 6 are typeset.
type DeepHeadingPolicy = markup.DeepHeadingPolicy

// Deep heading policies.
const (
	DeepHeadingCollapse = markup.DeepHeadingCollapse
	DeepHeadingText     = markup.DeepHeadingText
)

// Metadata is the front matter of a policy.
type Metadata = frontmatter.Metadata

// Theme holds the design tokens shared by HTML and PDF.
type Theme = theme.Theme

// CommandRunner runs the LaTeX engine. Tests replace it with a fake.
type CommandRunner = latex.CommandRunner

// Input is one policy document.
type Input struct {
	Source    string // File content, front matter included (required)
	Name      string // Output file stem (default: "policy")
	SourceDir string // Directory relative image paths resolve against (optional)
	OutDir    string // Artifact directory; empty keeps the render in memory
}

// name returns the output stem.
func (in Input) name() string {
	if n := strings.TrimSpace(in.Name); n != "" {
		return n
	}
	return defaultName
}

// Result describes one render. Paths are empty for artifacts that were
// not written.
type Result struct {
	Meta     *Metadata
	TeX      string // Fully substituted LaTeX source
	HTML     string // Complete HTML page
	TeXPath  string
	BodyPath string // Body fragment, kept for debugging
	PDFPath  string
	HTMLPath string
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout      time.Duration
	engine       string
	assetPath    string
	themePath    string
	theme        *theme.Theme
	workDir      string
	deepHeadings DeepHeadingPolicy
	dateFormat   string
	footer       string
}

const (
	// defaultTimeout bounds one external engine run.
	defaultTimeout = latex.DefaultTimeout
	defaultName    = "policy"
)

// WithTimeout sets the timeout of one engine run.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("trustforge: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEngine selects the PDF engine: "xelatex" (default) or "chrome".
func WithEngine(engine string) Option {
	return func(r *Renderer) {
		r.cfg.engine = strings.ToLower(strings.TrimSpace(engine))
	}
}

// WithAssetPath overrides embedded templates, styles and themes with the
// files under path. Missing files fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithThemePath loads the theme from a YAML file.
func WithThemePath(path string) Option {
	return func(r *Renderer) {
		r.cfg.themePath = path
	}
}

// WithTheme uses an already loaded theme. It wins over WithThemePath.
func WithTheme(t *Theme) Option {
	return func(r *Renderer) {
		r.cfg.theme = t
	}
}

// WithWorkDir sets where themes/neutral.yaml is looked up when no theme is
// given. Defaults to the current directory.
func WithWorkDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.workDir = dir
	}
}

// WithDeepHeadings selects the policy for headings of level 4 to 6.
func WithDeepHeadings(p DeepHeadingPolicy) Option {
	return func(r *Renderer) {
		r.cfg.deepHeadings = p
	}
}

// WithDateFormat sets the display format of last_reviewed
// (preset name or tokens such as "DD/MM/YYYY").
func WithDateFormat(format string) Option {
	return func(r *Renderer) {
		r.cfg.dateFormat = format
	}
}

// WithFooter sets the footer used when a policy does not declare one.
func WithFooter(text string) Option {
	return func(r *Renderer) {
		r.cfg.footer = text
	}
}

// WithRunner replaces the process runner used for the LaTeX engine.
func WithRunner(runner CommandRunner) Option {
	return func(r *Renderer) {
		r.runner = runner
	}
}

// withLookPath replaces engine discovery. Used by tests.
func withLookPath(fn func(string) (string, error)) Option {
	return func(r *Renderer) {
		r.lookPath = fn
	}
}

// withPDFPrinter injects a PDF printer for the chrome engine. Used by tests.
func withPDFPrinter(p pdfPrinter) Option {
	return func(r *Renderer) {
		r.printer = p
	}
}

// ParseDeepHeadings maps "collapse" and "text" to a policy.
func ParseDeepHeadings(s string) (DeepHeadingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collapse":
		return DeepHeadingCollapse, nil
	case "text":
		return DeepHeadingText, nil
	default:
		return DeepHeadingCollapse, fmt.Errorf("invalid deep heading policy %q (must be collapse or text)", s)
	}
}
