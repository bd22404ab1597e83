package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/term"

	"github.com/alnah/go-trustforge/internal/latex"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, prompting and external tool discovery.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Prompter Prompter                          // Interactive input for "new"; nil disables prompts
	LookPath func(file string) (string, error) // Engine discovery for "doctor"
	Runner   latex.CommandRunner               // Version probes for "doctor"
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	env := &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: exec.LookPath,
		Runner:   &latex.ExecRunner{},
	}
	if term.IsTerminal(int(os.Stdin.Fd())) { // #nosec G115 -- file descriptors fit in int
		env.Prompter = &surveyPrompter{}
	}
	return env
}
