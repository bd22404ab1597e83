package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a heading has no characters left to slug.
const DefaultSlug = "section"

var (
	// ATX heading with an optional trailing {#id}; at most 3 leading spaces.
	headingLinePattern = regexp.MustCompile(`^(\s{0,3})(#{1,6})\s+(.+?)\s*(\{#[\p{L}\p{N}_-]+\})?\s*$`)

	tocHeadingPattern = regexp.MustCompile(`(?i)^\s{0,3}#{1,6}\s+table\s+of\s+contents\s*$`)

	// Fence marker with an optional info string.
	fenceOpenPattern = regexp.MustCompile("^`{3}([A-Za-z0-9+_.-]*)\\s*$")

	slugSeparators = regexp.MustCompile(`-{2,}`)
)

// SlugRegistry hands out unique heading slugs for one document.
// The zero value is not usable; create one per render with NewSlugRegistry.
type SlugRegistry struct {
	counts map[string]int
	used   map[string]bool
}

// NewSlugRegistry returns an empty registry.
func NewSlugRegistry() *SlugRegistry {
	return &SlugRegistry{
		counts: make(map[string]int),
		used:   make(map[string]bool),
	}
}

// Reserve marks id as taken without counting it as an occurrence.
func (r *SlugRegistry) Reserve(id string) {
	r.used[id] = true
}

// Unique returns base the first time it is seen and base-2, base-3, ...
// afterwards, skipping any candidate already handed out or reserved.
func (r *SlugRegistry) Unique(base string) string {
	if base == "" {
		base = DefaultSlug
	}
	for {
		r.counts[base]++
		candidate := base
		if n := r.counts[base]; n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		if !r.used[candidate] {
			r.used[candidate] = true
			return candidate
		}
	}
}

// Slugify turns heading text into a label-safe identifier.
// Accents are stripped, the result is lowercased, anything that is not a
// letter, digit, space, underscore or hyphen is dropped, and runs of
// separators collapse into single hyphens. Letters without an ASCII base,
// such as CJK or Cyrillic, are kept.
func Slugify(text string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(slugSeparators.ReplaceAllString(b.String(), "-"), "-")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}

// StripDeclaredTOC removes a hand-written table of contents.
// A heading whose text is "table of contents" (any case, any level) starts
// a skip; every line up to the next heading is dropped and that heading is kept.
// Lines inside fenced code are never treated as headings.
func StripDeclaredTOC(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))

	skipping := false
	fences := fenceTracker{}
	for _, line := range lines {
		inCode := fences.feed(line)
		if !inCode {
			if tocHeadingPattern.MatchString(line) {
				skipping = true
				continue
			}
			if skipping && headingLinePattern.MatchString(line) {
				skipping = false
			}
		}
		if !skipping {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// DeduplicateHeadings appends a {#id} to every heading that lacks one.
// Explicit ids are reserved first and left untouched, so generated ids never
// collide with them. Running it again over its own output is a no-op.
func DeduplicateHeadings(body string, slugs *SlugRegistry) string {
	return DeduplicateHeadingsUpTo(body, slugs, maxHeadingLevel)
}

// DeduplicateHeadingsUpTo is DeduplicateHeadings restricted to headings of
// level maxLevel or shallower. Deeper headings are neither labelled nor
// registered.
func DeduplicateHeadingsUpTo(body string, slugs *SlugRegistry, maxLevel int) string {
	lines := strings.Split(body, "\n")

	fences := fenceTracker{}
	for _, line := range lines {
		if fences.feed(line) {
			continue
		}
		if m := headingLinePattern.FindStringSubmatch(line); m != nil && m[4] != "" && len(m[2]) <= maxLevel {
			slugs.Reserve(headingID(m[4]))
		}
	}

	fences = fenceTracker{}
	for i, line := range lines {
		if fences.feed(line) {
			continue
		}
		m := headingLinePattern.FindStringSubmatch(line)
		if m == nil || m[4] != "" || len(m[2]) > maxLevel {
			continue
		}
		id := slugs.Unique(Slugify(m[3]))
		lines[i] = m[1] + m[2] + " " + m[3] + " {#" + id + "}"
	}

	return strings.Join(lines, "\n")
}

// headingID strips the braces and hash from a "{#id}" annotation.
func headingID(annotation string) string {
	return strings.TrimSuffix(strings.TrimPrefix(annotation, "{#"), "}")
}

// fenceTracker follows ``` fences line by line.
type fenceTracker struct {
	open bool
}

// feed reports whether line belongs to a code fence, markers included.
func (f *fenceTracker) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if f.open {
		if isFenceClose(trimmed) {
			f.open = false
		}
		return true
	}
	if fenceOpenPattern.MatchString(trimmed) {
		f.open = true
		return true
	}
	return false
}

func isFenceClose(trimmed string) bool {
	return trimmed == "```"
}
