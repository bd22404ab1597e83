package latex

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-trustforge/internal/theme"
)

const minimalTemplate = `\definecolor{TFPrimary}{rgb}{__TF_PRIMARY_RGB__}
\title{__TF_TITLE__}
__TF_SUBTITLE_BLOCK____TF_LOGO_BLOCK__v__TF_VERSION__ by __TF_OWNER__ on __TF_LAST_REVIEWED__
__TF_FOOTER_BLOCK__
__POLICY_BODY__
`

func testContext() *TemplateContext {
	return &TemplateContext{
		Title:        "Doc",
		Version:      "1",
		Owner:        "O",
		LastReviewed: "2025-01-01",
		Theme:        theme.Default(),
	}
}

// ---------------------------------------------------------------------------
// TestCheckTemplate - Body Placeholder Cardinality
// ---------------------------------------------------------------------------

func TestCheckTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{"exactly one", "a " + BodyPlaceholder + " b", false},
		{"missing", "no body here", true},
		{"twice", BodyPlaceholder + BodyPlaceholder, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckTemplate(tt.tmpl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTemplateIntegrity) {
				t.Errorf("error = %v, want ErrTemplateIntegrity", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSubstitute
// ---------------------------------------------------------------------------

func TestSubstitute_EndToEnd(t *testing.T) {
	t.Parallel()

	body := "\\section{Hi}\\label{hi}\n\nThis is \\textbf{bold} and \\texttt{code}.\n"
	got, err := Substitute(minimalTemplate, testContext(), body)
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}

	for _, want := range []string{
		`\title{Doc}`,
		`v1 by O on 2025-01-01`,
		`\definecolor{TFPrimary}{rgb}{0.133,0.133,0.133}`,
		`\textbf{bold}`,
		`\texttt{code}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "__") {
		t.Errorf("output still contains placeholder markers:\n%s", got)
	}
}

func TestSubstitute_RejectsBadBodyCount(t *testing.T) {
	t.Parallel()

	for _, tmpl := range []string{"__TF_TITLE__", BodyPlaceholder + "\n" + BodyPlaceholder} {
		_, err := Substitute(tmpl, testContext(), "body")
		if !errors.Is(err, ErrTemplateIntegrity) {
			t.Errorf("Substitute(%q) error = %v, want ErrTemplateIntegrity", tmpl, err)
		}
	}
}

func TestSubstitute_OptionalBlocksEmptyWhenAbsent(t *testing.T) {
	t.Parallel()

	got, err := Substitute(minimalTemplate, testContext(), "")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if strings.Contains(got, `\includegraphics`) || strings.Contains(got, `\itshape`) || strings.Contains(got, `\small`) {
		t.Errorf("absent optional blocks rendered:\n%s", got)
	}
}

func TestSubstitute_OptionalBlocksPresent(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.Subtitle = "Sub & title"
	ctx.Footer = "example.com"
	ctx.LogoFile = "logo.png"

	got, err := Substitute(minimalTemplate, ctx, "")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	for _, want := range []string{
		`\itshape Sub \& title}`,
		`{\color{TFText}\small example.com}\par`,
		`\includegraphics[height=24mm]{logo.png}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSubstitute_MetadataEscaped(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.Title = `R&D_100% \ {x}`

	got, err := Substitute(minimalTemplate, ctx, "")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	want := `\title{R\&D\_100\% \textbackslash{} \{x\}}`
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
}

func TestSubstitute_MetadataCannotInjectBody(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.Title = BodyPlaceholder

	got, err := Substitute(minimalTemplate, ctx, "BODY")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if strings.Count(got, "BODY") != 2 {
		// One from the inserted body, one inside the escaped title.
		t.Errorf("unexpected body insertion:\n%s", got)
	}
	if strings.Contains(got, `\title{BODY}`) {
		t.Errorf("title was replaced by body:\n%s", got)
	}
}

func TestSubstitute_BodyInsertedVerbatim(t *testing.T) {
	t.Parallel()

	body := "\\begin{verbatim}\n__TF_NOT_A_TOKEN__ & % $\n\\end{verbatim}\n"
	got, err := Substitute(minimalTemplate, testContext(), body)
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if !strings.Contains(got, body) {
		t.Errorf("body not inserted verbatim:\n%s", got)
	}
}

func TestSubstitute_UnresolvedPlaceholder(t *testing.T) {
	t.Parallel()

	_, err := Substitute("__TF_UNKNOWN__\n"+BodyPlaceholder, testContext(), "")
	if !errors.Is(err, ErrUnresolvedPlaceholder) {
		t.Fatalf("error = %v, want ErrUnresolvedPlaceholder", err)
	}
	if !strings.Contains(err.Error(), "__TF_UNKNOWN__") {
		t.Errorf("error %q does not name the token", err)
	}
}

func TestSubstitute_ThemeTokens(t *testing.T) {
	t.Parallel()

	th := theme.Default()
	th.Layout.Watermark = "DRAFT"
	th.Layout.Header = false
	th.HTML.HeadingWeight = 400
	ctx := testContext()
	ctx.Theme = th

	tmpl := "__TF_MARGIN_MM__|__TF_FONT_BODY__|__TF_HEADING_SERIES__|__TF_HEADER_BLOCK__|__TF_WATERMARK_BLOCK__|__TF_LINK_RGB__\n" + BodyPlaceholder
	got, err := Substitute(tmpl, ctx, "")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	for _, want := range []string{"20|Inter|", `\mdseries`, `\fancyhead{}`, `\SetWatermarkText{DRAFT}`, "0.102,0.451,0.910"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSubstitute_NilThemeUsesDefault(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.Theme = nil
	if _, err := Substitute(minimalTemplate, ctx, ""); err != nil {
		t.Errorf("Substitute() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRGBTriple
// ---------------------------------------------------------------------------

func TestRGBTriple(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hex     string
		want    string
		wantErr bool
	}{
		{"#000000", "0.000,0.000,0.000", false},
		{"#FFFFFF", "1.000,1.000,1.000", false},
		{"#1A73E8", "0.102,0.451,0.910", false},
		{"#ff0080", "1.000,0.000,0.502", false},
		{"#FFF", "", true},
		{"red", "", true},
	}

	for _, tt := range tests {
		got, err := RGBTriple(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("RGBTriple(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("RGBTriple(%q) = %q, want %q", tt.hex, got, tt.want)
		}
	}
}
