package markup

import (
	"regexp"
	"strings"
)

// Block is one top-level element of a Document.
// The set of implementations is closed: Paragraph, Heading, List, CodeBlock,
// Blockquote, TableBlock and Rule.
type Block interface {
	block()
}

// Paragraph is a run of text lines joined with single spaces.
type Paragraph struct {
	Text Line
}

// Heading is an ATX heading. Label is unique within the document.
type Heading struct {
	Level int
	Text  Line
	Label string
}

// List is a flat bullet or numbered list.
type List struct {
	Ordered bool
	Items   []Line
}

// CodeBlock holds fenced code exactly as written.
type CodeBlock struct {
	Lang  string
	Lines []string
}

// Blockquote keeps one Line per quoted source line.
type Blockquote struct {
	Lines []Line
}

// TableBlock is a pipe table with inline content parsed per cell.
type TableBlock struct {
	Align  []Alignment
	Header []Line
	Rows   [][]Line
}

// Rule is a horizontal rule.
type Rule struct{}

func (Paragraph) block()  {}
func (Heading) block()    {}
func (List) block()       {}
func (CodeBlock) block()  {}
func (Blockquote) block() {}
func (TableBlock) block() {}
func (Rule) block()       {}

// Document is the parsed body of a policy.
type Document struct {
	Blocks []Block
}

// DeepHeadingPolicy decides what happens to headings of level 4 to 6.
type DeepHeadingPolicy int

const (
	// DeepHeadingCollapse keeps them as headings at the deepest rendered level.
	DeepHeadingCollapse DeepHeadingPolicy = iota
	// DeepHeadingText treats them as ordinary paragraph text.
	DeepHeadingText
)

// Heading depths: Markdown allows six levels, LaTeX sectioning renders three.
const (
	maxHeadingLevel    = 6
	maxSectioningLevel = 3
)

// MaxLevel returns the deepest heading level that stays a heading.
func (p DeepHeadingPolicy) MaxLevel() int {
	if p == DeepHeadingText {
		return maxSectioningLevel
	}
	return maxHeadingLevel
}

// ParseOptions tunes Parse. The zero value is ready to use.
type ParseOptions struct {
	DeepHeadings DeepHeadingPolicy
	// Slugs labels headings that carry no {#id}. A fresh registry is used when nil.
	Slugs *SlugRegistry
}

var (
	blockquotePattern  = regexp.MustCompile(`^\s*>\s?(.*)$`)
	rulePattern        = regexp.MustCompile(`^\s*-{3,}\s*$`)
	headingPattern     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	headingIDPattern   = regexp.MustCompile(`\s*\{#([\p{L}\p{N}_-]+)\}\s*$`)
	orderedItemPattern = regexp.MustCompile(`^\s*\d+\.\s+(.*)$`)
)

// Parse converts a Markdown body into a Document.
// It never fails: input outside the supported subset becomes paragraph text,
// and an unterminated code fence is closed at the end of input.
func Parse(body string, opts ParseOptions) *Document {
	slugs := opts.Slugs
	if slugs == nil {
		slugs = NewSlugRegistry()
	}
	p := &parser{state: idleState{}, slugs: slugs, deep: opts.DeepHeadings}

	for _, line := range strings.Split(body, "\n") {
		p.step(line)
	}
	p.flush()

	return &Document{Blocks: p.blocks}
}

// blockState is the parser's current open construct.
type blockState interface {
	state()
}

type (
	idleState      struct{}
	paragraphState struct{ lines []string }
	listState      struct {
		ordered bool
		items   []string
	}
	codeState struct {
		lang  string
		lines []string
	}
	quoteState struct{ lines []Line }
	tableState struct{ rows [][]string }
)

func (idleState) state()      {}
func (paragraphState) state() {}
func (listState) state()      {}
func (codeState) state()      {}
func (quoteState) state()     {}
func (tableState) state()     {}

type parser struct {
	state  blockState
	blocks []Block
	slugs  *SlugRegistry
	deep   DeepHeadingPolicy
}

// step feeds one source line. Every (state, line) pair has exactly one outcome;
// checks run in priority order and the first match wins.
func (p *parser) step(raw string) {
	if code, ok := p.state.(codeState); ok {
		if isFenceClose(strings.TrimSpace(raw)) {
			p.flush()
			return
		}
		code.lines = append(code.lines, raw)
		p.state = code
		return
	}

	if m := fenceOpenPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		p.flush()
		p.state = codeState{lang: m[1]}
		return
	}

	if m := blockquotePattern.FindStringSubmatch(raw); m != nil {
		quote, ok := p.state.(quoteState)
		if !ok {
			p.flush()
		}
		quote.lines = append(quote.lines, ParseInline(strings.TrimSpace(m[1])))
		p.state = quote
		return
	}
	if _, ok := p.state.(quoteState); ok {
		p.flush()
	}

	line := strings.TrimSpace(raw)

	switch {
	case rulePattern.MatchString(line):
		p.flush()
		p.blocks = append(p.blocks, Rule{})
		return
	case line == "":
		p.flush()
		return
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		level := len(m[1])
		p.flush()
		if level <= p.deep.MaxLevel() {
			p.blocks = append(p.blocks, p.heading(level, m[2]))
			return
		}
		p.text(strings.TrimSpace(headingIDPattern.ReplaceAllString(m[2], "")))
		return
	}

	if IsPipeRow(line) {
		table, ok := p.state.(tableState)
		if !ok {
			p.flush()
		}
		table.rows = append(table.rows, SplitRow(line))
		p.state = table
		return
	}
	if _, ok := p.state.(tableState); ok {
		p.flush()
	}

	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		p.listItem(false, strings.TrimSpace(line[2:]))
		return
	}
	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		p.listItem(true, strings.TrimSpace(m[1]))
		return
	}

	p.text(headingIDPattern.ReplaceAllString(line, ""))
}

// heading builds a Heading, keeping an explicit {#id} as its label.
func (p *parser) heading(level int, text string) Heading {
	label := ""
	if m := headingIDPattern.FindStringSubmatch(text); m != nil {
		label = m[1]
		text = headingIDPattern.ReplaceAllString(text, "")
	}
	spans := ParseInline(strings.TrimSpace(text))
	if label == "" {
		label = p.slugs.Unique(Slugify(PlainText(spans)))
	}
	return Heading{Level: level, Text: spans, Label: label}
}

// listItem starts a new item, switching list kind when needed.
func (p *parser) listItem(ordered bool, text string) {
	list, ok := p.state.(listState)
	if !ok || list.ordered != ordered {
		p.flush()
		list = listState{ordered: ordered}
	}
	list.items = append(list.items, text)
	p.state = list
}

// text adds a paragraph line. Inside a list it continues the last item.
func (p *parser) text(line string) {
	switch s := p.state.(type) {
	case listState:
		last := len(s.items) - 1
		s.items[last] = joinText(s.items[last], line)
		p.state = s
	case paragraphState:
		s.lines = append(s.lines, line)
		p.state = s
	default:
		p.flush()
		p.state = paragraphState{lines: []string{line}}
	}
}

// flush closes the open construct, if any, and returns to idle.
func (p *parser) flush() {
	switch s := p.state.(type) {
	case paragraphState:
		p.blocks = append(p.blocks, Paragraph{Text: ParseInline(strings.Join(s.lines, " "))})
	case listState:
		items := make([]Line, len(s.items))
		for i, it := range s.items {
			items[i] = ParseInline(it)
		}
		p.blocks = append(p.blocks, List{Ordered: s.ordered, Items: items})
	case codeState:
		p.blocks = append(p.blocks, CodeBlock{Lang: s.lang, Lines: s.lines})
	case quoteState:
		p.blocks = append(p.blocks, Blockquote{Lines: s.lines})
	case tableState:
		p.blocks = append(p.blocks, tableBlock(AssembleTable(s.rows)))
	}
	p.state = idleState{}
}

func tableBlock(t Table) TableBlock {
	tb := TableBlock{Align: t.Align}
	if t.Header != nil {
		tb.Header = parseCells(t.Header)
	}
	tb.Rows = make([][]Line, len(t.Rows))
	for i, r := range t.Rows {
		tb.Rows[i] = parseCells(r)
	}
	return tb
}

func parseCells(cells []string) []Line {
	out := make([]Line, len(cells))
	for i, c := range cells {
		out[i] = ParseInline(c)
	}
	return out
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
