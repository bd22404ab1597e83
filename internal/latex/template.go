package latex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-trustforge/internal/theme"
)

// BodyPlaceholder marks where the rendered body goes. A template must
// contain it exactly once.
const BodyPlaceholder = "__POLICY_BODY__"

// Template tokens. Theme tokens are replaced first, then the optional
// blocks, then document metadata, then the body.
const (
	TokenPrimaryRGB    = "__TF_PRIMARY_RGB__"
	TokenTextRGB       = "__TF_TEXT_RGB__"
	TokenMutedRGB      = "__TF_MUTED_RGB__"
	TokenBorderRGB     = "__TF_BORDER_RGB__"
	TokenBackgroundRGB = "__TF_BACKGROUND_RGB__"
	TokenLinkRGB       = "__TF_LINK_RGB__"
	TokenHeadingRGB    = "__TF_HEADING_RGB__"
	TokenFontBody      = "__TF_FONT_BODY__"
	TokenFontHeading   = "__TF_FONT_HEADING__"
	TokenFontLogo      = "__TF_FONT_LOGO__"
	TokenFontMono      = "__TF_FONT_MONO__"
	TokenFontScale     = "__TF_FONT_SCALE__"
	TokenLineHeight    = "__TF_LINE_HEIGHT__"
	TokenMarginMM      = "__TF_MARGIN_MM__"
	TokenLogoHeightMM  = "__TF_LOGO_HEIGHT_MM__"
	TokenHeadingWeight = "__TF_HEADING_WEIGHT__"
	TokenHeadingSeries = "__TF_HEADING_SERIES__"
	TokenHeaderBlock   = "__TF_HEADER_BLOCK__"
	TokenPageFooter    = "__TF_PAGE_FOOTER_BLOCK__"
	TokenWatermark     = "__TF_WATERMARK_BLOCK__"

	TokenSubtitleBlock = "__TF_SUBTITLE_BLOCK__"
	TokenFooterBlock   = "__TF_FOOTER_BLOCK__"
	TokenLogoBlock     = "__TF_LOGO_BLOCK__"

	TokenTitle        = "__TF_TITLE__"
	TokenVersion      = "__TF_VERSION__"
	TokenOwner        = "__TF_OWNER__"
	TokenLastReviewed = "__TF_LAST_REVIEWED__"
	TokenBrand        = "__TF_BRAND__"
)

var leftoverTokenPattern = regexp.MustCompile(`__TF_[A-Z0-9_]+__`)

// TemplateContext carries everything a template can reference.
// Subtitle, Footer and LogoFile are optional; empty means absent.
type TemplateContext struct {
	Title        string
	Version      string
	Owner        string
	LastReviewed string
	Subtitle     string
	Footer       string
	LogoFile     string // File name relative to the .tex file
	Theme        *theme.Theme
}

// HasLogo reports whether the title page shows a logo.
func (c *TemplateContext) HasLogo() bool {
	return c.LogoFile != ""
}

// CheckTemplate verifies the body placeholder appears exactly once.
func CheckTemplate(tmpl string) error {
	if n := strings.Count(tmpl, BodyPlaceholder); n != 1 {
		return fmt.Errorf("%w: expected exactly one %s, found %d", ErrTemplateIntegrity, BodyPlaceholder, n)
	}
	return nil
}

// Substitute fills tmpl with ctx and inserts body verbatim.
// It fails before touching anything when the body placeholder count is not
// exactly one, and when any __TF_*__ token is left once metadata is in.
func Substitute(tmpl string, ctx *TemplateContext, body string) (string, error) {
	if err := CheckTemplate(tmpl); err != nil {
		return "", err
	}

	th := ctx.Theme
	if th == nil {
		th = theme.Default()
	}

	themeTokens, err := themeReplacements(th)
	if err != nil {
		return "", err
	}
	out := replaceAll(tmpl, themeTokens)
	out = replaceAll(out, blockReplacements(ctx, th))
	out = replaceAll(out, []replacement{
		{TokenTitle, Escape(ctx.Title)},
		{TokenVersion, Escape(ctx.Version)},
		{TokenOwner, Escape(ctx.Owner)},
		{TokenLastReviewed, Escape(ctx.LastReviewed)},
		{TokenBrand, Escape(th.Brand.Name)},
	})

	if left := leftoverTokenPattern.FindAllString(out, -1); len(left) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(uniqueStrings(left), ", "))
	}

	return strings.Replace(out, BodyPlaceholder, body, 1), nil
}

type replacement struct {
	token string
	value string
}

func replaceAll(s string, reps []replacement) string {
	for _, r := range reps {
		s = strings.ReplaceAll(s, r.token, r.value)
	}
	return s
}

// themeReplacements covers colors, fonts and numeric tokens.
func themeReplacements(th *theme.Theme) ([]replacement, error) {
	colors := []struct{ token, hex string }{
		{TokenPrimaryRGB, th.Color.Primary},
		{TokenTextRGB, th.Color.Text},
		{TokenMutedRGB, th.Color.Muted},
		{TokenBorderRGB, th.Color.Border},
		{TokenBackgroundRGB, th.Color.Background},
		{TokenLinkRGB, th.PDF.LinkColor},
		{TokenHeadingRGB, th.PDF.HeadingColor},
	}

	reps := make([]replacement, 0, len(colors)+16)
	for _, c := range colors {
		rgb, err := RGBTriple(c.hex)
		if err != nil {
			return nil, err
		}
		reps = append(reps, replacement{c.token, rgb})
	}

	series := `\mdseries`
	if th.HTML.HeadingWeight >= 600 {
		series = `\bfseries`
	}

	var watermark string
	if th.Layout.Watermark != "" {
		watermark = `\usepackage{draftwatermark}` + "\n" +
			`\SetWatermarkText{` + Escape(th.Layout.Watermark) + `}` + "\n" +
			`\SetWatermarkColor{TFBorder}`
	}

	header := `\fancyhead{}`
	if th.Layout.Header {
		header = `\fancyhead[L]{\color{TFMuted}\small ` + TokenTitle + `}` +
			`\fancyhead[R]{\color{TFMuted}\small ` + TokenVersion + `}`
	}
	pageFooter := `\fancyfoot{}`
	if th.Layout.Footer {
		pageFooter = `\fancyfoot[C]{\color{TFMuted}\small\thepage}`
	}

	reps = append(reps,
		replacement{TokenFontBody, Escape(th.Typography.FontBody)},
		replacement{TokenFontHeading, Escape(th.Typography.FontHeading)},
		replacement{TokenFontLogo, Escape(th.Typography.FontLogo)},
		replacement{TokenFontMono, Escape(th.Typography.FontMono)},
		replacement{TokenFontScale, formatNumber(th.Typography.Scale)},
		replacement{TokenLineHeight, formatNumber(th.Typography.LineHeight)},
		replacement{TokenMarginMM, formatNumber(th.Layout.PageMarginsMM)},
		replacement{TokenLogoHeightMM, formatNumber(th.Brand.LogoHeightMM)},
		replacement{TokenHeadingWeight, strconv.Itoa(th.HTML.HeadingWeight)},
		replacement{TokenHeadingSeries, series},
		replacement{TokenWatermark, watermark},
		replacement{TokenHeaderBlock, header},
		replacement{TokenPageFooter, pageFooter},
	)
	return reps, nil
}

// blockReplacements covers the optional title page blocks.
func blockReplacements(ctx *TemplateContext, th *theme.Theme) []replacement {
	var subtitle, footer, logo string
	if ctx.Subtitle != "" {
		subtitle = `{\vspace{2mm}\color{TFText}\Large\sffamily\itshape ` + Escape(ctx.Subtitle) + `}\par` + "\n"
	}
	if ctx.Footer != "" {
		footer = `{\color{TFText}\small ` + Escape(ctx.Footer) + `}\par`
	}
	if ctx.HasLogo() {
		logo = `\includegraphics[height=` + formatNumber(th.Brand.LogoHeightMM) + `mm]{` + ctx.LogoFile + `}\par` + "\n"
	}
	return []replacement{
		{TokenSubtitleBlock, subtitle},
		{TokenFooterBlock, footer},
		{TokenLogoBlock, logo},
	}
}

// RGBTriple converts #RRGGBB to "r,g,b" with three decimals, the form
// \definecolor{name}{rgb}{...} expects.
func RGBTriple(hex string) (string, error) {
	r, g, b, err := theme.HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.3f,%.3f,%.3f", r, g, b), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
