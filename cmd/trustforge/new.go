package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	flag "github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-trustforge/internal/dateutil"
	"github.com/alnah/go-trustforge/internal/fileutil"
	"github.com/alnah/go-trustforge/internal/frontmatter"
	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// Sentinel errors for scaffolding.
var (
	ErrPolicyExists = errors.New("policy file already exists")
	ErrAborted      = errors.New("aborted")
)

// Defaults for fields left blank.
const (
	defaultVersion  = "1.0"
	defaultOwner    = "CISO"
	defaultReviewed = "today"
)

// policySkeleton is the body of a new policy.
const policySkeleton = `
# Purpose

State what this policy protects and why.

# Scope

List the systems, people and data it covers.

# Policy

- Requirement one.
- Requirement two.

# Roles and Responsibilities

| Role | Responsibility |
| --- | --- |
| Owner | Maintains and reviews this policy |

# Compliance

Describe how compliance is measured and what happens on violation.

# Review

This policy is reviewed at least annually.
`

// Prompter asks for a single line of input.
type Prompter interface {
	Input(message, defaultValue string, validate func(string) error) (string, error)
}

// surveyPrompter implements Prompter on the terminal.
type surveyPrompter struct{}

func (p *surveyPrompter) Input(message, defaultValue string, validate func(string) error) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}

// newPolicy is the front matter written by "new". Field order is the
// order of the YAML block.
type newPolicy struct {
	Title        string   `yaml:"title"`
	Version      string   `yaml:"version"`
	Owner        string   `yaml:"owner"`
	LastReviewed string   `yaml:"last_reviewed"`
	Subtitle     string   `yaml:"subtitle,omitempty"`
	AppliesTo    []string `yaml:"applies_to,omitempty"`
	Refs         []string `yaml:"refs,omitempty"`
}

// runNew scaffolds a policy file, prompting for missing metadata when a
// terminal is attached.
func runNew(ctx context.Context, args []string, env *Environment) error {
	var flags newFlags
	fs := newFlagSet("new", env.Stderr, printNewUsage)
	addNewFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: policy file path required", ErrNoInput)
	}

	path := fs.Arg(0)
	if err := validateMarkdownExtension(path); err != nil {
		return err
	}
	if !flags.force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrPolicyExists, path)
	}

	prompter := env.Prompter
	if flags.noInput {
		prompter = nil
	}

	validDate := func(s string) error {
		_, err := dateutil.ResolveReviewDate(s, env.Now())
		return err
	}
	fields := []struct {
		value    *string
		message  string
		def      string
		validate func(string) error
	}{
		{&flags.title, "Title", titleFromPath(path), notBlank},
		{&flags.version, "Version", defaultVersion, notBlank},
		{&flags.owner, "Owner", defaultOwner, notBlank},
		{&flags.reviewed, "Last reviewed (YYYY-MM-DD or today)", defaultReviewed, validDate},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.value) != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompter == nil {
			*f.value = f.def
			continue
		}
		answer, err := prompter.Input(f.message, f.def, f.validate)
		if err != nil {
			return err
		}
		*f.value = strings.TrimSpace(answer)
	}

	reviewed, err := dateutil.ResolveReviewDate(flags.reviewed, env.Now())
	if err != nil {
		return err
	}

	content, err := renderNewPolicy(newPolicy{
		Title:        flags.title,
		Version:      flags.version,
		Owner:        flags.owner,
		LastReviewed: reviewed.Format(frontmatter.DateLayout),
		Subtitle:     flags.subtitle,
		AppliesTo:    flags.appliesTo,
		Refs:         flags.refs,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating policy directory: %w", err)
		}
	}
	// #nosec G306 -- policies are meant to be readable
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("writing policy: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}

// renderNewPolicy builds the file content and checks that it parses back.
func renderNewPolicy(p newPolicy) (string, error) {
	front, err := yamlutil.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	if !strings.HasSuffix(string(front), "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("---\n")
	b.WriteString(policySkeleton)
	content := b.String()

	if _, _, err := frontmatter.Parse(content); err != nil {
		return "", err
	}
	return content, nil
}

// titleFromPath turns "access-control.md" into "Access Control".
func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value cannot be blank")
	}
	return nil
}
