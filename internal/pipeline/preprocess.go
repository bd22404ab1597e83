package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// NormalizeLineEndings converts \r\n and \r to \n and drops a leading BOM.
func NormalizeLineEndings(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Preprocess prepares a policy body for either renderer.
// Runs of blank lines collapse to one blank line.
func Preprocess(content string) string {
	content = NormalizeLineEndings(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
