package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips anything from rendered policy HTML that the page
// template did not put there itself.
type Sanitizer struct {
	policy *bluemonday.Policy
}

var (
	classPattern = regexp.MustCompile(`^[a-zA-Z0-9_ -]+$`)
	idPattern    = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
	alignPattern = regexp.MustCompile(`^(left|center|right)$`)
)

// NewSanitizer builds the policy: user generated content rules, plus
// chroma classes on code, heading ids and table cell alignment.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "div")
	p.AllowAttrs("id").Matching(idPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("align").Matching(alignPattern).OnElements("th", "td")
	return &Sanitizer{policy: p}
}

// Sanitize returns the cleaned fragment.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
