package latex

import (
	"errors"
	"fmt"
)

// Sentinel errors for template and compiler failures.
var (
	ErrTemplateIntegrity     = errors.New("template integrity check failed")
	ErrUnresolvedPlaceholder = errors.New("template has unresolved placeholders")
	ErrCompile               = errors.New("LaTeX compilation failed")
	ErrCompilerNotFound      = errors.New("LaTeX engine not found")
)

// CompileError describes a failed engine pass. The engine log next to the
// .tex file holds the details.
type CompileError struct {
	Engine  string
	Pass    int
	TexPath string
	LogPath string
	Output  string // tail of the engine output
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s pass %d failed for %s: %v (see %s)", e.Engine, e.Pass, e.TexPath, e.Err, e.LogPath)
}

// Unwrap exposes both ErrCompile and the underlying process error.
func (e *CompileError) Unwrap() []error {
	return []error{ErrCompile, e.Err}
}
