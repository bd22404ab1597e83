// Package theme loads and validates the design tokens shared by the HTML
// and PDF outputs.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// Sentinel errors for theme operations.
var (
	ErrThemeNotFound = errors.New("theme file not found")
	ErrThemeParse    = errors.New("failed to parse theme")
	ErrInvalidTheme  = errors.New("invalid theme")
)

// DefaultThemeFile is looked up under ./themes/ when no theme is given.
const DefaultThemeFile = "neutral.yaml"

var hex6Pattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Theme holds the design tokens of a publication.
type Theme struct {
	Brand      Brand      `yaml:"brand"`
	Color      Color      `yaml:"color"`
	Typography Typography `yaml:"typography"`
	Layout     Layout     `yaml:"layout"`
	PDF        PDF        `yaml:"pdf"`
	HTML       HTML       `yaml:"html"`
}

// Brand identifies the publisher.
type Brand struct {
	Name         string  `yaml:"name"`
	LogoPath     string  `yaml:"logo_path"`      // Empty = no logo
	LogoHeightMM float64 `yaml:"logo_height_mm"` // Title page logo height
}

// Color holds 6-digit hex colors. Optional fields are empty when unset.
type Color struct {
	Primary      string `yaml:"primary"`
	Text         string `yaml:"text"`
	Muted        string `yaml:"muted"`
	Border       string `yaml:"border"`
	Background   string `yaml:"background"`
	PrimaryLight string `yaml:"primary_light"`
	PrimaryDark  string `yaml:"primary_dark"`
	Secondary    string `yaml:"secondary"`
	Accent       string `yaml:"accent"`
}

// Typography holds font families and spacing.
type Typography struct {
	FontBody    string  `yaml:"font_body"`
	FontHeading string  `yaml:"font_heading"`
	FontLogo    string  `yaml:"font_logo"`
	FontMono    string  `yaml:"font_mono"`
	Scale       float64 `yaml:"scale"`       // Relative type scale
	LineHeight  float64 `yaml:"line_height"` // Paragraph line height
}

// Layout holds page level settings.
type Layout struct {
	PageMarginsMM float64 `yaml:"page_margins_mm"`
	Header        bool    `yaml:"header"`
	Footer        bool    `yaml:"footer"`
	Watermark     string  `yaml:"watermark"` // Empty = no watermark
}

// PDF holds tokens used only by the PDF output.
type PDF struct {
	LinkColor    string `yaml:"link_color"`
	HeadingColor string `yaml:"heading_color"`
}

// HTML holds tokens used only by the HTML output.
type HTML struct {
	MaxWidthPx    int `yaml:"max_width_px"`
	HeadingWeight int `yaml:"heading_weight"` // CSS weight, 100..900
}

// Default returns the built-in neutral theme.
func Default() *Theme {
	return &Theme{
		Brand: Brand{Name: "Trustforge", LogoHeightMM: 24},
		Color: Color{
			Primary:    "#222222",
			Text:       "#222222",
			Muted:      "#555555",
			Border:     "#DDDDDD",
			Background: "#FFFFFF",
		},
		Typography: Typography{
			FontBody:    "Inter",
			FontHeading: "Inter",
			FontLogo:    "Inter",
			FontMono:    "Menlo",
			Scale:       1.0,
			LineHeight:  1.5,
		},
		Layout: Layout{PageMarginsMM: 20, Header: true, Footer: true},
		PDF:    PDF{LinkColor: "#1A73E8", HeadingColor: "#000000"},
		HTML:   HTML{MaxWidthPx: 800, HeadingWeight: 700},
	}
}

// Parse decodes YAML theme data over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Theme, error) {
	t := Default()
	if err := yamlutil.UnmarshalStrict(data, t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeParse, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads and parses a theme file. A relative brand.logo_path is
// resolved against the theme file's directory.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided theme path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, path)
		}
		return nil, fmt.Errorf("reading theme %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if t.Brand.LogoPath != "" && !filepath.IsAbs(t.Brand.LogoPath) {
		t.Brand.LogoPath = filepath.Join(filepath.Dir(path), t.Brand.LogoPath)
	}
	return t, nil
}

// Resolve picks the theme for a render: the explicit path when given,
// otherwise themes/neutral.yaml under workDir if present, otherwise the
// embedded fallback. It returns the theme and a description of its source.
func Resolve(explicit, workDir string, embedded []byte) (*Theme, string, error) {
	if explicit != "" {
		t, err := Load(explicit)
		return t, explicit, err
	}

	local := filepath.Join(workDir, "themes", DefaultThemeFile)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		t, err := Load(local)
		return t, local, err
	}

	if len(embedded) == 0 {
		return Default(), "built-in defaults", nil
	}
	t, err := Parse(embedded)
	if err != nil {
		return nil, "", fmt.Errorf("embedded theme: %w", err)
	}
	return t, "embedded " + DefaultThemeFile, nil
}

// Validate checks colors, fonts and numeric ranges.
func (t *Theme) Validate() error {
	if t == nil {
		return nil
	}

	required := []struct{ field, value string }{
		{"color.primary", t.Color.Primary},
		{"color.text", t.Color.Text},
		{"color.muted", t.Color.Muted},
		{"color.border", t.Color.Border},
		{"color.background", t.Color.Background},
		{"pdf.link_color", t.PDF.LinkColor},
		{"pdf.heading_color", t.PDF.HeadingColor},
	}
	for _, c := range required {
		if !hex6Pattern.MatchString(c.value) {
			return fmt.Errorf("%w: %s: %q is not a 6-digit hex color like #AABBCC", ErrInvalidTheme, c.field, c.value)
		}
	}

	optional := []struct{ field, value string }{
		{"color.primary_light", t.Color.PrimaryLight},
		{"color.primary_dark", t.Color.PrimaryDark},
		{"color.secondary", t.Color.Secondary},
		{"color.accent", t.Color.Accent},
	}
	for _, c := range optional {
		if c.value != "" && !hex6Pattern.MatchString(c.value) {
			return fmt.Errorf("%w: %s: %q is not a 6-digit hex color like #AABBCC", ErrInvalidTheme, c.field, c.value)
		}
	}

	fonts := []struct{ field, value string }{
		{"typography.font_body", t.Typography.FontBody},
		{"typography.font_heading", t.Typography.FontHeading},
		{"typography.font_logo", t.Typography.FontLogo},
		{"typography.font_mono", t.Typography.FontMono},
	}
	for _, f := range fonts {
		if f.value == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidTheme, f.field)
		}
	}

	positive := []struct {
		field string
		value float64
	}{
		{"typography.scale", t.Typography.Scale},
		{"typography.line_height", t.Typography.LineHeight},
		{"layout.page_margins_mm", t.Layout.PageMarginsMM},
		{"brand.logo_height_mm", t.Brand.LogoHeightMM},
		{"html.max_width_px", float64(t.HTML.MaxWidthPx)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive (got %s)", ErrInvalidTheme, p.field, strconv.FormatFloat(p.value, 'f', -1, 64))
		}
	}

	if t.HTML.HeadingWeight < 100 || t.HTML.HeadingWeight > 900 {
		return fmt.Errorf("%w: html.heading_weight must be between 100 and 900 (got %d)", ErrInvalidTheme, t.HTML.HeadingWeight)
	}

	return nil
}

// CSSVar is one CSS custom property.
type CSSVar struct {
	Name  string
	Value string
}

// CSSVars flattens the tokens into --tf-* custom properties, in a stable order.
// Optional colors are included only when set.
func (t *Theme) CSSVars() []CSSVar {
	vars := []CSSVar{
		{"--tf-primary", t.Color.Primary},
		{"--tf-text", t.Color.Text},
		{"--tf-muted", t.Color.Muted},
		{"--tf-border", t.Color.Border},
		{"--tf-bg", t.Color.Background},
		{"--tf-link", t.PDF.LinkColor},
		{"--tf-heading", t.PDF.HeadingColor},
		{"--tf-font-body", t.Typography.FontBody},
		{"--tf-font-heading", t.Typography.FontHeading},
		{"--tf-font-logo", t.Typography.FontLogo},
		{"--tf-font-mono", t.Typography.FontMono},
		{"--tf-line-height", strconv.FormatFloat(t.Typography.LineHeight, 'f', -1, 64)},
		{"--tf-max-width", strconv.Itoa(t.HTML.MaxWidthPx) + "px"},
		{"--tf-heading-weight", strconv.Itoa(t.HTML.HeadingWeight)},
	}

	optional := []CSSVar{
		{"--tf-primary-light", t.Color.PrimaryLight},
		{"--tf-primary-dark", t.Color.PrimaryDark},
		{"--tf-secondary", t.Color.Secondary},
		{"--tf-accent", t.Color.Accent},
	}
	for _, v := range optional {
		if v.Value != "" {
			vars = append(vars, v)
		}
	}
	return vars
}

// HexToRGB converts #RRGGBB to fractional components in 0..1.
func HexToRGB(hex string) (r, g, b float64, err error) {
	if !hex6Pattern.MatchString(hex) {
		return 0, 0, 0, fmt.Errorf("%w: %q is not a 6-digit hex color", ErrInvalidTheme, hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return float64(v>>16&0xFF) / 255, float64(v>>8&0xFF) / 255, float64(v&0xFF) / 255, nil
}
