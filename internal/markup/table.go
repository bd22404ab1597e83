package markup

import (
	"regexp"
	"strings"
)

// Alignment is the horizontal alignment of a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

var (
	pipeRowPattern       = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	separatorCellPattern = regexp.MustCompile(`^\s*:?-{3,}:?\s*$`)
)

// Table is a normalized pipe table. Every row, header included, has
// exactly len(Align) cells.
type Table struct {
	Align  []Alignment
	Header []string // nil when the source had no alignment row
	Rows   [][]string
}

// Columns returns the column count.
func (t Table) Columns() int {
	return len(t.Align)
}

// IsPipeRow reports whether line is a pipe table row (leading and trailing |).
func IsPipeRow(line string) bool {
	return pipeRowPattern.MatchString(line)
}

// SplitRow splits a pipe row into trimmed cells. Outer pipes are optional.
func SplitRow(line string) []string {
	row := strings.TrimSpace(line)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")

	cells := strings.Split(row, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// IsSeparatorRow reports whether every cell is an alignment marker
// such as ---, :---, ---: or :---:.
func IsSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellPattern.MatchString(c) {
			return false
		}
	}
	return true
}

// alignmentOf maps a separator cell to its column alignment.
func alignmentOf(cell string) Alignment {
	cell = strings.TrimSpace(cell)
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	default:
		return AlignLeft
	}
}

// AssembleTable builds a Table from captured rows.
//
// When the second row is an alignment row, it sets the column count and
// alignments, the first row becomes the header and the rest the body.
// Otherwise all rows are body rows, the first row sets the column count and
// every column is left aligned. Rows are padded with empty cells or
// truncated to fit; a ragged table is never an error.
func AssembleTable(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}

	var t Table
	body := rows
	if len(rows) >= 2 && IsSeparatorRow(rows[1]) {
		t.Align = make([]Alignment, len(rows[1]))
		for i, c := range rows[1] {
			t.Align[i] = alignmentOf(c)
		}
		t.Header = fitRow(rows[0], len(t.Align))
		body = rows[2:]
	} else {
		t.Align = make([]Alignment, len(rows[0]))
	}

	t.Rows = make([][]string, 0, len(body))
	for _, r := range body {
		t.Rows = append(t.Rows, fitRow(r, len(t.Align)))
	}
	return t
}

// fitRow pads or truncates cells to exactly n entries.
func fitRow(cells []string, n int) []string {
	out := make([]string, n)
	copy(out, cells)
	return out
}
