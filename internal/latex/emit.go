package latex

import (
	"strings"

	"github.com/alnah/go-trustforge/internal/markup"
)

// Inline renders spans. Text is escaped exactly once; macro output is
// written as is.
func Inline(spans markup.Line) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markup.SpanBold:
			b.WriteString(`\textbf{` + Escape(s.Text) + `}`)
		case markup.SpanItalic:
			b.WriteString(`\emph{` + Escape(s.Text) + `}`)
		case markup.SpanCode:
			b.WriteString(`\texttt{` + Escape(s.Text) + `}`)
		case markup.SpanLink:
			b.WriteString(`\href{` + EscapeURL(s.URL) + `}{` + Escape(s.Text) + `}`)
		case markup.SpanAutolink:
			b.WriteString(`\url{` + EscapeURL(s.URL) + `}`)
		default:
			b.WriteString(Escape(s.Text))
		}
	}
	return b.String()
}

// sectionCommands maps heading levels to sectioning macros. Deeper levels
// use the last entry.
var sectionCommands = []string{`\section`, `\subsection`, `\subsubsection`}

// Body renders a document as a LaTeX body fragment ending in a newline.
func Body(doc *markup.Document) string {
	var out []string
	for _, blk := range doc.Blocks {
		out = appendBlock(out, blk)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}

// appendBlock renders one block followed by a blank separator line.
func appendBlock(out []string, blk markup.Block) []string {
	switch b := blk.(type) {
	case markup.Paragraph:
		out = append(out, Inline(b.Text))

	case markup.Heading:
		cmd := sectionCommands[min(b.Level, len(sectionCommands))-1]
		out = append(out, cmd+`{`+Inline(b.Text)+`}\label{`+b.Label+`}`)

	case markup.List:
		env := "itemize"
		if b.Ordered {
			env = "enumerate"
		}
		out = append(out, `\begin{`+env+`}`)
		for _, item := range b.Items {
			out = append(out, listItem(Inline(item)))
		}
		out = append(out, `\end{`+env+`}`)

	case markup.CodeBlock:
		if b.Lang != "" {
			out = append(out, `\textit{`+Escape(b.Lang)+`}`)
		}
		out = append(out, `\begin{verbatim}`)
		out = append(out, b.Lines...)
		out = append(out, `\end{verbatim}`)

	case markup.Blockquote:
		out = append(out, `\begin{quote}`)
		for _, line := range b.Lines {
			out = append(out, Inline(line))
		}
		out = append(out, `\end{quote}`)

	case markup.TableBlock:
		out = appendTable(out, b)

	case markup.Rule:
		out = append(out, `\noindent\hrulefill`)
	}
	return append(out, "")
}

// listItem guards a leading "[" so it is not read as \item's optional label.
func listItem(text string) string {
	if strings.HasPrefix(text, "[") {
		return `\item{} ` + text
	}
	return `\item ` + text
}

func appendTable(out []string, t markup.TableBlock) []string {
	if len(t.Align) == 0 {
		return out
	}

	spec := make([]string, len(t.Align))
	for i, a := range t.Align {
		spec[i] = alignSpec(a)
	}
	out = append(out, `\begin{tabular}{`+strings.Join(spec, "|")+`}`, `\hline`)

	if t.Header != nil {
		out = append(out, tableRow(t.Header, true), `\hline`)
	}
	for _, r := range t.Rows {
		out = append(out, tableRow(r, false), `\hline`)
	}
	return append(out, `\end{tabular}`)
}

func tableRow(cells []markup.Line, header bool) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = Inline(c)
		if header && rendered[i] != "" {
			rendered[i] = `\textbf{` + rendered[i] + `}`
		}
	}
	return strings.Join(rendered, " & ") + ` \\`
}

func alignSpec(a markup.Alignment) string {
	switch a {
	case markup.AlignCenter:
		return "c"
	case markup.AlignRight:
		return "r"
	default:
		return "l"
	}
}
