package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Policy body to HTML fragment
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "explicit heading id",
			input:        "## Scope {#scope-2}\n",
			wantContains: []string{`<h2 id="scope-2">Scope</h2>`},
		},
		{
			name:         "aligned table",
			input:        "| A | B |\n|:---:|---:|\n| 1 | 2 |\n",
			wantContains: []string{`<th align="center">A</th>`, `<td align="right">2</td>`},
		},
		{
			name:         "highlighted code uses classes",
			input:        "```go\nfunc main() {}\n```\n",
			wantContains: []string{`class="chroma"`},
			wantExcludes: []string{`style="`},
		},
		{
			name:         "raw html is omitted",
			input:        "<script>alert(1)</script>\n\ntext\n",
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "soft line breaks join",
			input:        "one\ntwo\n",
			wantExcludes: []string{"<br"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS()
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() should style .chroma classes")
	}
}
