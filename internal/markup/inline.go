package markup

import (
	"regexp"
	"strings"
)

// SpanKind identifies the formatting of an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
	SpanAutolink
)

var spanKindNames = [...]string{"text", "bold", "italic", "code", "link", "autolink"}

func (k SpanKind) String() string {
	if int(k) < len(spanKindNames) {
		return spanKindNames[k]
	}
	return "unknown"
}

// Span is one run of inline content. Spans never nest.
// URL is set for SpanLink and SpanAutolink only.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// Line is the inline content of a single text run.
type Line []Span

// Anchored patterns, matched at the current scan position.
var (
	autolinkPattern = regexp.MustCompile(`^<(https?://[^>\s]+)>`)
	linkPattern     = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern     = regexp.MustCompile(`^\*\*([^*]+)\*\*`)
	italicPattern   = regexp.MustCompile(`^\*([^*]+)\*`)
)

// ParseInline splits text into spans, scanning left to right.
//
// At each position the first construct that matches wins, in this order:
// code span, autolink, link, bold, italic. Code span contents are opaque,
// so markers inside backticks stay literal. Italic never opens on a star
// that is adjacent to another star, so it cannot eat half of a bold pair.
// Markers without a partner are kept as literal text.
func ParseInline(text string) Line {
	var (
		spans    Line
		buf      strings.Builder
		prevStar bool
	)

	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: buf.String()})
			buf.Reset()
		}
	}
	emit := func(s Span) {
		flush()
		spans = append(spans, s)
		prevStar = false
	}

	for i := 0; i < len(text); {
		rest := text[i:]

		switch text[i] {
		case '`':
			if end := strings.IndexByte(rest[1:], '`'); end > 0 {
				emit(Span{Kind: SpanCode, Text: rest[1 : 1+end]})
				i += end + 2
				continue
			}
		case '<':
			if m := autolinkPattern.FindStringSubmatch(rest); m != nil {
				emit(Span{Kind: SpanAutolink, Text: m[1], URL: m[1]})
				i += len(m[0])
				continue
			}
		case '[':
			if m := linkPattern.FindStringSubmatch(rest); m != nil {
				emit(Span{Kind: SpanLink, Text: m[1], URL: strings.TrimSpace(m[2])})
				i += len(m[0])
				continue
			}
		case '*':
			if m := boldPattern.FindStringSubmatch(rest); m != nil {
				emit(Span{Kind: SpanBold, Text: m[1]})
				i += len(m[0])
				continue
			}
			if !prevStar && !strings.HasPrefix(rest, "**") {
				m := italicPattern.FindStringSubmatch(rest)
				if m != nil && !strings.HasPrefix(rest[len(m[0]):], "*") {
					emit(Span{Kind: SpanItalic, Text: m[1]})
					i += len(m[0])
					continue
				}
			}
		}

		buf.WriteByte(text[i])
		prevStar = text[i] == '*'
		i++
	}
	flush()

	return spans
}

// PlainText renders spans without any formatting.
// Links keep their text, autolinks their URL.
func PlainText(spans Line) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
