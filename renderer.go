package trustforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-trustforge/internal/assets"
	"github.com/alnah/go-trustforge/internal/dateutil"
	"github.com/alnah/go-trustforge/internal/fileutil"
	"github.com/alnah/go-trustforge/internal/frontmatter"
	"github.com/alnah/go-trustforge/internal/latex"
	"github.com/alnah/go-trustforge/internal/markup"
	"github.com/alnah/go-trustforge/internal/pipeline"
	"github.com/alnah/go-trustforge/internal/theme"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ latex.CommandRunner    = (*latex.ExecRunner)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
	_ pdfPrinter             = (*rodPrinter)(nil)
)

// tocMaxLevel is the deepest heading listed in the HTML table of contents.
const tocMaxLevel = 3

// Renderer publishes policy documents as LaTeX, PDF and HTML.
// Create with NewRenderer, render with RenderPDF, RenderHTML or RenderLaTeX,
// and Close when done. A Renderer is not safe for concurrent use; use a
// RendererPool for parallel batches.
type Renderer struct {
	cfg    rendererConfig
	logger *zap.Logger

	assets        assets.AssetLoader
	theme         *theme.Theme
	latexTemplate string
	page          *pipeline.PageRenderer
	style         string
	highlight     string

	htmlConverter pipeline.HTMLConverter
	sanitizer     *pipeline.Sanitizer
	compiler      *latex.Compiler
	runner        CommandRunner
	lookPath      func(string) (string, error)
	printer       pdfPrinter
}

// NewRenderer creates a Renderer. Templates and the theme are loaded and
// checked here, so a broken template fails before any document is read.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout: defaultTimeout,
			engine:  EngineXeLaTeX,
		},
		logger:        zap.NewNop(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		sanitizer:     pipeline.NewSanitizer(),
	}

	for _, opt := range opts {
		opt(r)
	}

	switch r.cfg.engine {
	case "":
		r.cfg.engine = EngineXeLaTeX
	case EngineXeLaTeX, EngineChrome:
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, r.cfg.engine, EngineXeLaTeX, EngineChrome)
	}

	if _, err := dateutil.Format(time.Time{}, r.cfg.dateFormat); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	r.assets = resolver

	if err := r.loadTheme(); err != nil {
		return nil, err
	}
	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	r.compiler = latex.NewCompiler(latex.DefaultEngine, r.logger)
	r.compiler.Timeout = r.cfg.timeout
	if r.runner != nil {
		r.compiler.Runner = r.runner
	}
	if r.lookPath != nil {
		r.compiler.LookPath = r.lookPath
	}

	// The browser itself starts on first use.
	if r.printer == nil {
		r.printer = newRodPrinter(r.cfg.timeout)
	}

	return r, nil
}

// loadTheme picks the theme: WithTheme, then WithThemePath, then
// themes/neutral.yaml under the work directory, then the embedded one.
func (r *Renderer) loadTheme() error {
	if r.cfg.theme != nil {
		if err := r.cfg.theme.Validate(); err != nil {
			return err
		}
		r.theme = r.cfg.theme
		return nil
	}

	embedded, err := r.assets.LoadTheme(assets.DefaultThemeName)
	if err != nil {
		return fmt.Errorf("loading default theme: %w", err)
	}

	workDir := r.cfg.workDir
	if workDir == "" {
		workDir = "."
	}

	t, source, err := theme.Resolve(r.cfg.themePath, workDir, embedded)
	if err != nil {
		return err
	}
	r.logger.Debug("theme resolved", zap.String("source", source))
	r.theme = t
	return nil
}

func (r *Renderer) loadTemplates() error {
	tex, err := r.assets.LoadLaTeXTemplate(assets.DefaultTemplateName)
	if err != nil {
		return fmt.Errorf("loading LaTeX template: %w", err)
	}
	if err := latex.CheckTemplate(tex); err != nil {
		return err
	}
	r.latexTemplate = tex

	pageTmpl, err := r.assets.LoadHTMLTemplate(assets.DefaultTemplateName)
	if err != nil {
		return fmt.Errorf("loading HTML template: %w", err)
	}
	if r.page, err = pipeline.NewPageRenderer(pageTmpl); err != nil {
		return err
	}

	if r.style, err = r.assets.LoadStyle(assets.DefaultStyleName); err != nil {
		return fmt.Errorf("loading style: %w", err)
	}
	if r.highlight, err = pipeline.HighlightCSS(); err != nil {
		return err
	}
	return nil
}

// Theme returns the theme in use.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Engine returns the PDF engine in use.
func (r *Renderer) Engine() string {
	return r.cfg.engine
}

// Close releases the browser, if one was started.
func (r *Renderer) Close() error {
	if r.printer != nil {
		return r.printer.Close()
	}
	return nil
}

// prepared is a policy split, normalized and parsed once per render.
type prepared struct {
	meta     *Metadata
	body     string // Markdown with every heading carrying an {#id}
	doc      *markup.Document
	reviewed string
	footer   string
}

// prepare runs the steps shared by every output. All state it builds,
// the slug registry included, belongs to this render only.
func (r *Renderer) prepare(in Input) (*prepared, error) {
	if strings.TrimSpace(in.Source) == "" {
		return nil, ErrEmptyBody
	}

	meta, body, err := frontmatter.Parse(in.Source)
	if err != nil {
		return nil, err
	}

	body = pipeline.Preprocess(body)
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	body = markup.StripDeclaredTOC(body)
	slugs := markup.NewSlugRegistry()
	body = markup.DeduplicateHeadingsUpTo(body, slugs, r.cfg.deepHeadings.MaxLevel())
	doc := markup.Parse(body, markup.ParseOptions{
		DeepHeadings: r.cfg.deepHeadings,
		Slugs:        slugs,
	})

	reviewed, err := dateutil.Format(meta.LastReviewed, r.cfg.dateFormat)
	if err != nil {
		return nil, err
	}

	footer := meta.Footer
	if footer == "" {
		footer = r.cfg.footer
	}

	return &prepared{
		meta:     meta,
		body:     body,
		doc:      doc,
		reviewed: reviewed,
		footer:   footer,
	}, nil
}

// RenderLaTeX transpiles a policy and fills the LaTeX template. With an
// output directory it also writes <name>.body.tex, <name>.tex and the logo.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) RenderLaTeX(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := r.prepare(in)
	if err != nil {
		return nil, err
	}
	body := latex.Body(p.doc)

	var logoFile string
	if in.OutDir != "" {
		if err := os.MkdirAll(in.OutDir, 0o750); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		if logoFile, err = r.copyPDFLogo(in.OutDir); err != nil {
			return nil, err
		}
	}

	tex, err := latex.Substitute(r.latexTemplate, &latex.TemplateContext{
		Title:        p.meta.Title,
		Version:      p.meta.Version,
		Owner:        p.meta.Owner,
		LastReviewed: p.reviewed,
		Subtitle:     p.meta.Subtitle,
		Footer:       p.footer,
		LogoFile:     logoFile,
		Theme:        r.theme,
	}, body)
	if err != nil {
		return nil, err
	}

	res = &Result{Meta: p.meta, TeX: tex}
	if in.OutDir == "" {
		return res, nil
	}

	stem := in.name()
	res.BodyPath = filepath.Join(in.OutDir, stem+".body.tex")
	if err := writeArtifact(res.BodyPath, body); err != nil {
		return nil, err
	}
	res.TeXPath = filepath.Join(in.OutDir, stem+".tex")
	if err := writeArtifact(res.TeXPath, tex); err != nil {
		return nil, err
	}

	r.logger.Debug("wrote LaTeX source", zap.String("tex", res.TeXPath), zap.String("body", res.BodyPath))
	return res, nil
}

// RenderPDF renders a policy to <OutDir>/<name>.pdf with the configured
// engine. The xelatex engine runs two passes over the written .tex file;
// a failed pass returns a *CompileError.
func (r *Renderer) RenderPDF(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if in.OutDir == "" {
		return nil, fmt.Errorf("%w: output directory is required", ErrPDFGeneration)
	}

	if r.cfg.engine == EngineChrome {
		return r.renderChromePDF(ctx, in)
	}

	res, err = r.RenderLaTeX(ctx, in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pdfPath, err := r.compiler.Compile(ctx, res.TeXPath)
	if err != nil {
		return nil, fmt.Errorf("typesetting %s: %w", res.TeXPath, err)
	}
	res.PDFPath = pdfPath

	r.logger.Info("rendered PDF",
		zap.String("engine", EngineXeLaTeX),
		zap.String("pdf", pdfPath),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// RenderHTML renders a policy as a standalone HTML page. With an output
// directory it writes <name>.html and copies the logo under assets/.
func (r *Renderer) RenderHTML(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := r.prepare(in)
	if err != nil {
		return nil, err
	}

	logo, err := r.copyHTMLLogo(in.OutDir)
	if err != nil {
		return nil, err
	}

	page, err := r.buildPage(ctx, p, logo, in.SourceDir, false)
	if err != nil {
		return nil, err
	}

	res = &Result{Meta: p.meta, HTML: page}
	if in.OutDir == "" {
		return res, nil
	}

	res.HTMLPath = filepath.Join(in.OutDir, in.name()+".html")
	if err := writeArtifact(res.HTMLPath, page); err != nil {
		return nil, err
	}
	r.logger.Info("rendered HTML", zap.String("html", res.HTMLPath))
	return res, nil
}

// buildPage converts the body, sanitizes it and fills the page template.
// For printing, relative body paths become file:// URLs under sourceDir.
func (r *Renderer) buildPage(ctx context.Context, p *prepared, logo, sourceDir string, forPrint bool) (string, error) {
	fragment, err := r.htmlConverter.ToHTML(ctx, p.body)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}
	fragment = r.sanitizer.Sanitize(fragment)

	if forPrint && sourceDir != "" {
		if fragment, err = pipeline.RewriteRelativePaths(fragment, sourceDir); err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	cssVars := r.theme.CSSVars()
	vars := make([]pipeline.CSSVar, len(cssVars))
	for i, v := range cssVars {
		vars[i] = pipeline.CSSVar(v)
	}

	return r.page.Render(ctx, &pipeline.PageData{
		Meta: pipeline.PageMeta{
			Title:    p.meta.Title,
			Version:  p.meta.Version,
			Owner:    p.meta.Owner,
			Subtitle: p.meta.Subtitle,
			Footer:   p.footer,
		},
		Reviewed:  p.reviewed,
		Brand:     r.theme.Brand.Name,
		Logo:      logo,
		Vars:      vars,
		Style:     r.style,
		Highlight: r.highlight,
		TOC:       tableOfContents(p.doc),
		Body:      fragment,
	})
}

// tableOfContents lists headings down to tocMaxLevel.
func tableOfContents(doc *markup.Document) []pipeline.TOCEntry {
	var entries []pipeline.TOCEntry
	for _, blk := range doc.Blocks {
		h, ok := blk.(markup.Heading)
		if !ok || h.Level > tocMaxLevel {
			continue
		}
		entries = append(entries, pipeline.TOCEntry{
			Level: h.Level,
			ID:    h.Label,
			Text:  markup.PlainText(h.Text),
		})
	}
	return entries
}

// copyPDFLogo copies the brand logo next to the .tex file as logo<ext>.
// A missing logo is left out of the title page.
func (r *Renderer) copyPDFLogo(outDir string) (string, error) {
	src := r.theme.Brand.LogoPath
	if src == "" {
		return "", nil
	}
	if !fileutil.FileExists(src) {
		r.logger.Warn("logo not found, title page will have none", zap.String("path", src))
		return "", nil
	}

	name := "logo" + strings.ToLower(filepath.Ext(src))
	if err := fileutil.CopyFile(src, filepath.Join(outDir, name)); err != nil {
		return "", fmt.Errorf("copying logo: %w", err)
	}
	return name, nil
}

// copyHTMLLogo copies the brand logo to <outDir>/assets/ and returns its
// page-relative path. A configured logo that does not exist is an error.
func (r *Renderer) copyHTMLLogo(outDir string) (string, error) {
	src := r.theme.Brand.LogoPath
	if src == "" {
		return "", nil
	}
	if !fileutil.FileExists(src) {
		return "", fmt.Errorf("%w: logo %s", ErrAssetNotFound, src)
	}
	if outDir == "" {
		return "", nil
	}

	rel := "assets/" + filepath.Base(src)
	if err := fileutil.CopyFile(src, filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
		return "", fmt.Errorf("copying logo: %w", err)
	}
	return rel, nil
}

// writeArtifact writes content, creating the parent directory.
func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- published artifact
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
