package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-trustforge/internal/process"
)

// Compiler defaults.
const (
	DefaultEngine  = "xelatex"
	DefaultPasses  = 2
	DefaultTimeout = 2 * time.Minute

	// outputTailLines bounds the engine output kept in a CompileError.
	outputTailLines = 20
)

// AuxExtensions lists the engine byproducts removed before a build.
var AuxExtensions = []string{".aux", ".toc", ".out", ".lof", ".lot", ".log"}

// CommandRunner runs an external command in dir and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (output string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child gets its own
// process group so cancellation also stops anything it spawned.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- engine name comes from configuration
	cmd.Dir = dir
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = 5 * time.Second

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.String(), err
}

// Compiler typesets .tex files with an external engine.
// No pass is retried: the first failure ends the build.
type Compiler struct {
	Engine   string
	Passes   int
	Timeout  time.Duration
	Runner   CommandRunner
	Logger   *zap.Logger
	LookPath func(file string) (string, error)
}

// NewCompiler returns a Compiler for the given engine with default passes
// and timeout. An empty engine selects xelatex.
func NewCompiler(engine string, logger *zap.Logger) *Compiler {
	if engine == "" {
		engine = DefaultEngine
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		Engine:   engine,
		Passes:   DefaultPasses,
		Timeout:  DefaultTimeout,
		Runner:   &ExecRunner{},
		Logger:   logger,
		LookPath: exec.LookPath,
	}
}

// Available reports the resolved engine path, or ErrCompilerNotFound.
func (c *Compiler) Available() (string, error) {
	path, err := c.LookPath(c.Engine)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCompilerNotFound, c.Engine, err)
	}
	return path, nil
}

// Compile runs the engine over texPath in its own directory and returns the
// path of the produced PDF. Two passes resolve the table of contents and
// cross references. A failed pass returns a *CompileError pointing at the
// engine log.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if _, err := c.Available(); err != nil {
		return "", err
	}

	dir := filepath.Dir(texPath)
	name := filepath.Base(texPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	CleanAux(dir, stem)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	passes := c.Passes
	if passes < 1 {
		passes = DefaultPasses
	}

	for pass := 1; pass <= passes; pass++ {
		c.Logger.Debug("typesetting", zap.String("engine", c.Engine), zap.Int("pass", pass), zap.String("file", texPath))

		out, err := c.Runner.Run(ctx, dir, c.Engine, "-interaction=nonstopmode", "-halt-on-error", name)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return "", fmt.Errorf("%s pass %d: timed out after %s: %w", c.Engine, pass, c.Timeout, ctxErr)
			}
			return "", ctxErr
		}
		return "", &CompileError{
			Engine:  c.Engine,
			Pass:    pass,
			TexPath: texPath,
			LogPath: filepath.Join(dir, stem+".log"),
			Output:  tail(out, outputTailLines),
			Err:     err,
		}
	}

	return filepath.Join(dir, stem+".pdf"), nil
}

// CleanAux removes stale engine byproducts for stem in dir. Missing files
// are not an error.
func CleanAux(dir, stem string) {
	for _, ext := range AuxExtensions {
		_ = os.Remove(filepath.Join(dir, stem+ext))
	}
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
