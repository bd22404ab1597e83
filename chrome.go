package trustforge

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-trustforge/internal/fileutil"
	"github.com/alnah/go-trustforge/internal/pipeline"
)

// pdfPrinter prints a local HTML file to PDF. It exists so the chrome
// engine can be tested without a browser.
type pdfPrinter interface {
	PrintFile(ctx context.Context, filePath string, opts *printOptions) ([]byte, error)
	Close() error
}

// printOptions holds page settings for one print.
type printOptions struct {
	MarginMM float64
	Footer   string // Plain text; empty = page numbers only
	Numbers  bool   // Show page x/y
}

// A4 paper in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	mmPerInch         = 25.4

	// footerReserveInches keeps the native footer clear of the body.
	footerReserveInches = 0.25
)

// rodPrinter implements pdfPrinter using go-rod.
// Rod downloads Chromium on first run if none is found.
type rodPrinter struct {
	browser *rod.Browser
	timeout time.Duration
}

func newRodPrinter(timeout time.Duration) *rodPrinter {
	return &rodPrinter{timeout: timeout}
}

// NewBrowserLauncher returns the launcher used for Chrome: ROD_BROWSER_BIN
// selects a pre-installed browser, and the sandbox is disabled in CI and
// containers.
func NewBrowserLauncher() *launcher.Launcher {
	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// ensureBrowser lazily connects to the browser.
func (p *rodPrinter) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	u, err := NewBrowserLauncher().Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	p.browser = rod.New().ControlURL(u)
	if err := p.browser.Connect(); err != nil {
		p.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (p *rodPrinter) Close() error {
	if p.browser != nil {
		err := p.browser.Close()
		p.browser = nil
		return err
	}
	return nil
}

// PrintFile opens a local HTML file in headless Chrome and prints it.
func (p *rodPrinter) PrintFile(ctx context.Context, filePath string, opts *printOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := p.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// buildPrintOptions maps theme margins and the footer onto Chrome's print
// settings. A nil opts prints with 20mm margins and no footer.
func buildPrintOptions(opts *printOptions) *proto.PagePrintToPDF {
	margin := 20 / mmPerInch
	if opts != nil && opts.MarginMM > 0 {
		margin = opts.MarginMM / mmPerInch
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	if opts != nil && (opts.Numbers || opts.Footer != "") {
		pdfOpts.MarginBottom = floatPtr(margin + footerReserveInches)
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(opts)
	}
	return pdfOpts
}

// buildFooterTemplate generates the HTML of Chrome's native footer.
// pageNumber and totalPages are filled in by Chrome.
func buildFooterTemplate(opts *printOptions) string {
	var left, right string
	if opts.Footer != "" {
		left = html.EscapeString(opts.Footer)
	}
	if opts.Numbers {
		right = `<span class="pageNumber"></span>/<span class="totalPages"></span>`
	}
	return `<div style="font-size: 8px; color: #888; width: 100%; padding: 0 12mm; display: flex; justify-content: space-between;">` +
		`<span>` + left + `</span><span>` + right + `</span></div>`
}

func floatPtr(v float64) *float64 {
	return &v
}

// renderChromePDF prints the HTML page instead of typesetting LaTeX.
// Relative paths are rewritten to file:// URLs because Chrome loads the
// page from a temp file.
func (r *Renderer) renderChromePDF(ctx context.Context, in Input) (*Result, error) {
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

	page, err := r.buildPage(ctx, p, logo, in.SourceDir, true)
	if err != nil {
		return nil, err
	}
	if page, err = pipeline.RewriteRelativePaths(page, in.OutDir); err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	start := time.Now()
	data, err := r.printer.PrintFile(ctx, tmpPath, &printOptions{
		MarginMM: r.theme.Layout.PageMarginsMM,
		Footer:   p.footer,
		Numbers:  r.theme.Layout.Footer,
	})
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}

	res := &Result{Meta: p.meta, HTML: page}
	res.PDFPath = filepath.Join(in.OutDir, in.name()+".pdf")
	if err := writeArtifact(res.PDFPath, string(data)); err != nil {
		return nil, err
	}

	r.logger.Info("rendered PDF",
		zap.String("engine", EngineChrome),
		zap.String("pdf", res.PDFPath),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
