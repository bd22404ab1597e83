package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/alnah/go-trustforge/internal/frontmatter"
)

// IndexHeader is the column order of the policy index.
var IndexHeader = []string{"file", "title", "version", "owner", "last_reviewed", "applies_to", "refs"}

// IndexEntry is one policy in the index.
type IndexEntry struct {
	File string
	Meta *frontmatter.Metadata
}

// ScanPolicies reads the front matter of every *.md file directly under dir,
// sorted by file name. A file without valid front matter fails the scan.
func ScanPolicies(dir string) ([]IndexEntry, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: policies directory: %v", ErrExport, err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	sort.Strings(paths)

	entries := make([]IndexEntry, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p) // #nosec G304 -- path from glob in user directory
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExport, err)
		}
		meta, _, err := frontmatter.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		entries = append(entries, IndexEntry{File: filepath.Base(p), Meta: meta})
	}
	return entries, nil
}

// WriteIndex writes entries as the policy index CSV. An empty set still
// gets a header row.
func WriteIndex(w io.Writer, entries []IndexEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.File,
			e.Meta.Title,
			e.Meta.Version,
			e.Meta.Owner,
			e.Meta.LastReviewedString(),
			joinList(e.Meta.AppliesTo),
			joinList(e.Meta.Refs),
		})
	}
	return writeRecords(w, IndexHeader, rows)
}
