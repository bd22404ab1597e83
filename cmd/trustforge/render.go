package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	trustforge "github.com/alnah/go-trustforge"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadPolicy  = errors.New("failed to read policy file")
	ErrInvalidArgs = errors.New("invalid arguments")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// outputKind selects the artifact a render command produces.
type outputKind int

const (
	outputPDF outputKind = iota
	outputHTML
	outputLaTeX
)

func (k outputKind) String() string {
	switch k {
	case outputHTML:
		return "html"
	case outputLaTeX:
		return "latex"
	default:
		return "pdf"
	}
}

func (k outputKind) ext() string {
	switch k {
	case outputHTML:
		return ".html"
	case outputLaTeX:
		return ".tex"
	default:
		return ".pdf"
	}
}

// renderResult holds the outcome of a single render.
type renderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// batchError reports failed renders. It unwraps to the first failure so
// the exit code and hint follow its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d render(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// runRender parses flags, resolves settings and renders every policy found.
func runRender(ctx context.Context, kind outputKind, args []string, env *Environment) error {
	var flags renderFlags
	fs := newFlagSet(kind.String(), env.Stderr, func(w io.Writer) { printRenderUsage(w, kind) })
	addRenderFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrInvalidArgs, fs.NArg())
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeRenderFlags(&flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}

	logger, err := newLogger(env.Stderr, cfg.LogLevel, flags.common.verbose, flags.common.quiet)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inputPath := cfg.PoliciesDir
	if fs.NArg() == 1 {
		inputPath = fs.Arg(0)
	}
	if inputPath == "" {
		return ErrNoInput
	}

	files, err := discoverFiles(inputPath, cfg.OutDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no policy files found in %s", ErrNoInput, inputPath)
	}

	opts, err := rendererOptions(cfg, logger)
	if err != nil {
		return err
	}

	poolSize := trustforge.ResolvePoolSize(cfg.Workers)
	pool := newRendererPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	// A broken theme or template fails once, before any file is read.
	r, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(r)

	logger.Debug("starting batch",
		zap.String("command", kind.String()),
		zap.Int("files", len(files)),
		zap.Int("workers", poolSize))

	results := renderBatch(ctx, pool, files, kind)

	failed, first := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: first}
	}
	return nil
}

// renderBatch processes files concurrently using the renderer pool.
func renderBatch(ctx context.Context, pool Pool, files []policyFile, kind outputKind) []renderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]renderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = renderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = renderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], kind)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, r policyRenderer, f policyFile, kind outputKind) renderResult {
	start := time.Now()
	result := renderResult{
		InputPath:  f.InputPath,
		OutputPath: f.artifactPath(kind),
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadPolicy, err)
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(f.OutDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	in := trustforge.Input{
		Source:    string(content),
		Name:      f.Name,
		SourceDir: filepath.Dir(f.InputPath),
		OutDir:    f.OutDir,
	}

	var res *trustforge.Result
	switch kind {
	case outputHTML:
		res, err = r.RenderHTML(ctx, in)
	case outputLaTeX:
		res, err = r.RenderLaTeX(ctx, in)
	default:
		res, err = r.RenderPDF(ctx, in)
	}
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	switch kind {
	case outputHTML:
		result.OutputPath = res.HTMLPath
	case outputLaTeX:
		result.OutputPath = res.TeXPath
	default:
		result.OutputPath = res.PDFPath
	}
	return result
}

// printResults outputs render results and returns the failure count and
// the first failure.
func printResults(results []renderResult, quiet, verbose bool, env *Environment) (int, error) {
	var succeeded, failed int
	var first error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed, first
}
