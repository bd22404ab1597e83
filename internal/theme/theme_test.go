package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParse - Decodes YAML over defaults
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("partial theme keeps defaults", func(t *testing.T) {
		t.Parallel()

		got, err := Parse([]byte("brand:\n  name: Acme\ncolor:\n  primary: \"#0A5FFF\"\n"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		want := Default()
		want.Brand.Name = "Acme"
		want.Color.Primary = "#0A5FFF"
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("colour:\n  primary: \"#000000\"\n"))
		if !errors.Is(err, ErrThemeParse) {
			t.Errorf("Parse() error = %v, want ErrThemeParse", err)
		}
	})

	t.Run("invalid color is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("color:\n  primary: \"#FFF\"\n"))
		if !errors.Is(err, ErrInvalidTheme) {
			t.Errorf("Parse() error = %v, want ErrInvalidTheme", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidate - Token constraints
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Theme)
		wantErr string
	}{
		{
			name:   "default theme is valid",
			mutate: func(*Theme) {},
		},
		{
			name:    "missing hash",
			mutate:  func(th *Theme) { th.Color.Text = "222222" },
			wantErr: "color.text",
		},
		{
			name:    "optional color validated when set",
			mutate:  func(th *Theme) { th.Color.Accent = "red" },
			wantErr: "color.accent",
		},
		{
			name:    "empty font",
			mutate:  func(th *Theme) { th.Typography.FontMono = "" },
			wantErr: "typography.font_mono",
		},
		{
			name:    "zero line height",
			mutate:  func(th *Theme) { th.Typography.LineHeight = 0 },
			wantErr: "typography.line_height",
		},
		{
			name:    "negative margin",
			mutate:  func(th *Theme) { th.Layout.PageMarginsMM = -5 },
			wantErr: "layout.page_margins_mm",
		},
		{
			name:    "heading weight out of range",
			mutate:  func(th *Theme) { th.HTML.HeadingWeight = 950 },
			wantErr: "html.heading_weight",
		},
		{
			name:   "lowercase hex digits",
			mutate: func(th *Theme) { th.Color.Primary = "#0a5fff" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th := Default()
			tt.mutate(th)
			err := th.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTheme) {
				t.Fatalf("Validate() error = %v, want ErrInvalidTheme", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, should name %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NilReceiver(t *testing.T) {
	t.Parallel()

	var th *Theme
	if err := th.Validate(); err != nil {
		t.Errorf("Validate() on nil = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoad / TestResolve - File lookup
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("relative logo path resolved against theme dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "acme.yaml")
		if err := os.WriteFile(path, []byte("brand:\n  logo_path: logo.png\n"), 0644); err != nil {
			t.Fatalf("failed to write theme: %v", err)
		}

		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if want := filepath.Join(dir, "logo.png"); got.Brand.LogoPath != want {
			t.Errorf("LogoPath = %q, want %q", got.Brand.LogoPath, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("Load() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	embedded := []byte("brand:\n  name: Embedded\n")

	t.Run("explicit path wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "explicit.yaml")
		if err := os.WriteFile(path, []byte("brand:\n  name: Explicit\n"), 0644); err != nil {
			t.Fatalf("failed to write theme: %v", err)
		}

		got, source, err := Resolve(path, dir, embedded)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Brand.Name != "Explicit" || source != path {
			t.Errorf("Resolve() = %q from %q", got.Brand.Name, source)
		}
	})

	t.Run("local neutral theme before embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "themes"), 0755); err != nil {
			t.Fatalf("failed to create themes dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "themes", DefaultThemeFile), []byte("brand:\n  name: Local\n"), 0644); err != nil {
			t.Fatalf("failed to write theme: %v", err)
		}

		got, _, err := Resolve("", dir, embedded)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Brand.Name != "Local" {
			t.Errorf("Brand.Name = %q, want Local", got.Brand.Name)
		}
	})

	t.Run("embedded fallback", func(t *testing.T) {
		t.Parallel()

		got, source, err := Resolve("", t.TempDir(), embedded)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Brand.Name != "Embedded" || !strings.HasPrefix(source, "embedded") {
			t.Errorf("Resolve() = %q from %q", got.Brand.Name, source)
		}
	})

	t.Run("no embedded data uses defaults", func(t *testing.T) {
		t.Parallel()

		got, _, err := Resolve("", t.TempDir(), nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if diff := cmp.Diff(Default(), got); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit missing path is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), "", embedded)
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("Resolve() error = %v, want ErrThemeNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCSSVars / TestHexToRGB
// ---------------------------------------------------------------------------

func TestCSSVars(t *testing.T) {
	t.Parallel()

	th := Default()
	vars := th.CSSVars()
	if vars[0] != (CSSVar{"--tf-primary", "#222222"}) {
		t.Errorf("first var = %+v", vars[0])
	}
	for _, v := range vars {
		if v.Name == "--tf-accent" {
			t.Error("unset optional color should be omitted")
		}
	}

	th.Color.Accent = "#FF0000"
	vars = th.CSSVars()
	if last := vars[len(vars)-1]; last != (CSSVar{"--tf-accent", "#FF0000"}) {
		t.Errorf("last var = %+v, want accent", last)
	}
}

func TestHexToRGB(t *testing.T) {
	t.Parallel()

	r, g, b, err := HexToRGB("#FF8000")
	if err != nil {
		t.Fatalf("HexToRGB() error = %v", err)
	}
	if r != 1 || g != float64(0x80)/255 || b != 0 {
		t.Errorf("HexToRGB() = %v,%v,%v", r, g, b)
	}

	if _, _, _, err := HexToRGB("#GG0000"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("HexToRGB(invalid) error = %v, want ErrInvalidTheme", err)
	}
}
