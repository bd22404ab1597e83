//go:build integration

package trustforge

// Notes:
// - Runs the real engines; xelatex tests skip when it is not installed
// - The theme uses Latin Modern so no extra fonts are needed
// - Chrome tests need a browser; rod downloads one when none is found

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/alnah/go-trustforge/internal/theme"
)

const testTimeout = 2 * time.Minute

func latinModernTheme() *theme.Theme {
	th := theme.Default()
	th.Typography.FontBody = "Latin Modern Roman"
	th.Typography.FontHeading = "Latin Modern Sans"
	th.Typography.FontLogo = "Latin Modern Sans"
	th.Typography.FontMono = "Latin Modern Mono"
	return th
}

func requirePDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s does not start with %%PDF-", path)
	}
}

func TestIntegration_XeLaTeX(t *testing.T) {
	if _, err := exec.LookPath(EngineXeLaTeX); err != nil {
		t.Skip("xelatex not installed")
	}

	r, err := NewRenderer(WithWorkDir(t.TempDir()), WithTheme(latinModernTheme()))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	body := "# Scope\nApplies to *all* staff & contractors.\n\n" +
		"| Role | Duty |\n|:---|---:|\n| CISO | Owns 100% |\n\n" +
		"```go\nfmt.Println(\"{}\")\n```\n# Scope\n- one\n- two\n"
	res, err := r.RenderPDF(ctx, Input{Source: policyWith(body), Name: "scope", OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	requirePDF(t, res.PDFPath)
}

func TestIntegration_Chrome(t *testing.T) {
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}

	r, err := NewRenderer(WithWorkDir(t.TempDir()), WithEngine(EngineChrome))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := r.RenderPDF(ctx, Input{Source: samplePolicy, OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	requirePDF(t, res.PDFPath)
}
