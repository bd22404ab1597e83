// Package frontmatter splits a policy file into its YAML metadata block and
// Markdown body.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// Sentinel errors for front matter parsing.
var (
	ErrMissingFrontMatter = errors.New("missing front matter")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// DateLayout is the format of last_reviewed.
const DateLayout = "2006-01-02"

// Optional BOM, "---" lines with trailing spaces, LF or CRLF.
var blockPattern = regexp.MustCompile(`(?s)\A\x{FEFF}?---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n(.*))?\z`)

// Metadata describes a policy document.
type Metadata struct {
	Title        string
	Version      string
	Owner        string
	LastReviewed time.Time
	AppliesTo    []string
	Refs         []string
	Subtitle     string // Optional
	Footer       string // Optional
}

// LastReviewedString formats LastReviewed as YYYY-MM-DD.
func (m *Metadata) LastReviewedString() string {
	return m.LastReviewed.Format(DateLayout)
}

// rawMetadata mirrors the YAML block. Scalars are kept as written.
type rawMetadata struct {
	Title        scalar   `yaml:"title"`
	Version      scalar   `yaml:"version"`
	Owner        scalar   `yaml:"owner"`
	LastReviewed scalar   `yaml:"last_reviewed"`
	AppliesTo    []scalar `yaml:"applies_to"`
	Refs         []scalar `yaml:"refs"`
	Subtitle     scalar   `yaml:"subtitle"`
	Footer       scalar   `yaml:"footer"`
}

// scalar keeps a YAML scalar's text, so "version: 1.10" stays "1.10" and
// dates are not converted to timestamps.
type scalar string

func (s *scalar) UnmarshalYAML(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch raw {
	case "", "~", "null":
		*s = ""
		return nil
	}

	var v any
	if err := yamlutil.Unmarshal(b, &v); err == nil {
		if str, ok := v.(string); ok {
			*s = scalar(str)
			return nil
		}
	}
	*s = scalar(raw)
	return nil
}

// Split separates the YAML block from the body.
func Split(content string) (yamlText, body string, err error) {
	m := blockPattern.FindStringSubmatch(content)
	if m == nil {
		return "", "", fmt.Errorf("%w: file must begin with a YAML block delimited by '---' lines", ErrMissingFrontMatter)
	}
	return m[1], m[2], nil
}

// Parse splits content and decodes its metadata. Title, version, owner and
// last_reviewed are required; last_reviewed must be a YYYY-MM-DD date.
func Parse(content string) (*Metadata, string, error) {
	yamlText, body, err := Split(content)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(yamlText) == "" {
		return nil, "", fmt.Errorf("%w: empty metadata block", ErrInvalidFrontMatter)
	}

	var raw rawMetadata
	if err := yamlutil.Unmarshal([]byte(yamlText), &raw); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	meta, err := raw.toMetadata()
	if err != nil {
		return nil, "", err
	}
	return meta, body, nil
}

func (r *rawMetadata) toMetadata() (*Metadata, error) {
	required := []struct {
		field string
		value scalar
	}{
		{"title", r.Title},
		{"version", r.Version},
		{"owner", r.Owner},
		{"last_reviewed", r.LastReviewed},
	}
	for _, f := range required {
		if strings.TrimSpace(string(f.value)) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidFrontMatter, f.field)
		}
	}

	reviewed, err := time.Parse(DateLayout, strings.TrimSpace(string(r.LastReviewed)))
	if err != nil {
		return nil, fmt.Errorf("%w: last_reviewed %q is not a YYYY-MM-DD date", ErrInvalidFrontMatter, r.LastReviewed)
	}

	return &Metadata{
		Title:        strings.TrimSpace(string(r.Title)),
		Version:      strings.TrimSpace(string(r.Version)),
		Owner:        strings.TrimSpace(string(r.Owner)),
		LastReviewed: reviewed,
		AppliesTo:    toStrings(r.AppliesTo),
		Refs:         toStrings(r.Refs),
		Subtitle:     strings.TrimSpace(string(r.Subtitle)),
		Footer:       strings.TrimSpace(string(r.Footer)),
	}, nil
}

func toStrings(in []scalar) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(string(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
