package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrExport indicates a CSV file could not be produced.
var ErrExport = errors.New("export failed")

// listSeparator joins multi-valued cells.
const listSeparator = ";"

// writeRecords writes a header and rows as CSV.
func writeRecords(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// WriteFile creates path (and its parent directories) and fills it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", ErrExport, path, err)
	}

	f, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrExport, path, err)
	}
	return nil
}

func joinList(items []string) string {
	return strings.Join(items, listSeparator)
}
