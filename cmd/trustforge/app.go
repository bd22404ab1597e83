package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// run dispatches to a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "pdf":
		err = runRender(ctx, outputPDF, rest, env)
	case "html":
		err = runRender(ctx, outputHTML, rest, env)
	case "latex":
		err = runRender(ctx, outputLaTeX, rest, env)
	case "index":
		err = runIndex(rest, env)
	case "risks":
		err = runRisks(rest, env)
	case "controls":
		err = runControls(rest, env)
	case "new":
		err = runNew(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "trustforge %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
