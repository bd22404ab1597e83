package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-trustforge/internal/export"
	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// Default CSV locations, relative to the output directory.
const (
	riskRegisterName = "risk_register.csv"
	controlMapName   = "control_map.csv"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// parseExportFlags parses the flags shared by the export commands.
func parseExportFlags(name string, args []string, env *Environment, usage func(io.Writer)) (*exportFlags, *flag.FlagSet, error) {
	f := &exportFlags{}
	fs := newFlagSet(name, env.Stderr, usage)
	addExportFlags(fs, f, "")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: expected one input, got %d", ErrInvalidArgs, fs.NArg())
	}
	return f, fs, nil
}

// runIndex writes the policy index CSV for a directory of policies.
func runIndex(args []string, env *Environment) error {
	flags, fs, err := parseExportFlags("index", args, env, printIndexUsage)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	dir := cfg.PoliciesDir
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}
	if dir == "" {
		return ErrNoInput
	}
	out := firstNonEmpty(flags.output, cfg.IndexPath)

	entries, err := export.ScanPolicies(dir)
	if err != nil {
		return err
	}
	if err := writeCSV(out, env, func(w io.Writer) error {
		return export.WriteIndex(w, entries)
	}); err != nil {
		return err
	}

	reportCSV(env, flags.common.quiet, out, len(entries), "policies")
	return nil
}

// runRisks converts a YAML risk register to CSV.
func runRisks(args []string, env *Environment) error {
	flags, fs, err := parseExportFlags("risks", args, env, printRisksUsage)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: risk register YAML path required", ErrNoInput)
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	out := firstNonEmpty(flags.output, filepath.Join(cfg.OutDir, riskRegisterName))

	data, err := yamlutil.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading risk register: %w", err)
	}
	risks, err := export.ParseRisks(data)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	if err := writeCSV(out, env, func(w io.Writer) error {
		return export.WriteRisks(w, risks)
	}); err != nil {
		return err
	}

	reportCSV(env, flags.common.quiet, out, len(risks), "risks")
	return nil
}

// runControls writes the NIST CSF 2.0 control map seed.
func runControls(args []string, env *Environment) error {
	flags, fs, err := parseExportFlags("controls", args, env, printControlsUsage)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: controls takes no arguments", ErrInvalidArgs)
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	out := firstNonEmpty(flags.output, filepath.Join(cfg.OutDir, controlMapName))

	controls := export.CSFControls()
	if err := writeCSV(out, env, func(w io.Writer) error {
		return export.WriteControls(w, export.CSFFramework, controls)
	}); err != nil {
		return err
	}

	reportCSV(env, flags.common.quiet, out, len(controls), "controls")
	return nil
}

// writeCSV sends a CSV to path, or to stdout for "-".
func writeCSV(path string, env *Environment, write func(io.Writer) error) error {
	if path == stdoutPath {
		return write(env.Stdout)
	}
	return export.WriteFile(path, write)
}

// reportCSV confirms a written file. Nothing is printed for stdout output.
func reportCSV(env *Environment, quiet bool, path string, n int, noun string) {
	if quiet || path == stdoutPath {
		return
	}
	fmt.Fprintf(env.Stdout, "Created %s (%d %s)\n", path, n, noun)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
