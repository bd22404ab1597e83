package latex

import "go4.org/bytereplacer"

// textEscaper covers every character LaTeX treats specially in running text.
// A single pass guarantees the backslash introduced by one replacement is
// never escaped again.
var textEscaper = bytereplacer.New(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	"–", "--",
	"—", "---",
)

// urlEscaper prepares a URL for \href and \url. Characters that would break
// the macro argument are percent-encoded, and the percent signs are escaped.
var urlEscaper = bytereplacer.New(
	`%`, `\%`,
	`#`, `\#`,
	`\`, `\%5C`,
	`{`, `\%7B`,
	`}`, `\%7D`,
	` `, `\%20`,
)

// Escape makes s safe as LaTeX running text.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return string(textEscaper.Replace([]byte(s)))
}

// EscapeURL makes s safe as the URL argument of \href or \url.
func EscapeURL(s string) string {
	if s == "" {
		return ""
	}
	return string(urlEscaper.Replace([]byte(s)))
}
