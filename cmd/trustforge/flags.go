package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags for the pdf, html and latex commands.
type renderFlags struct {
	common       commonFlags
	output       string
	workers      int
	timeout      string
	engine       string
	theme        string
	assetPath    string
	dateFormat   string
	deepHeadings string
	footer       string
	logLevel     string
}

// exportFlags holds flags for the index, risks and controls commands.
type exportFlags struct {
	common commonFlags
	output string
	dir    string
}

// newFlags holds flags for the new command.
type newFlags struct {
	title     string
	version   string
	owner     string
	reviewed  string
	subtitle  string
	appliesTo []string
	refs      []string
	force     bool
	noInput   bool
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.SortFlags = false
	fs.Usage = func() { usage(w) }
	return fs
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "engine timeout per run, e.g. 2m")
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: xelatex, chrome")
	fs.StringVarP(&f.theme, "theme", "t", "", "theme YAML path")
	fs.StringVar(&f.assetPath, "assets", "", "directory overriding embedded templates")
	fs.StringVar(&f.dateFormat, "date-format", "", "last_reviewed format or preset (iso, european, us, long)")
	fs.StringVar(&f.deepHeadings, "deep-headings", "", "headings 4-6: collapse, text")
	fs.StringVar(&f.footer, "footer", "", "title page footer when the policy has none")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	addCommonFlags(fs, &f.common)
}

// addExportFlags adds export flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags, defaultOutput string) {
	fs.StringVarP(&f.output, "output", "o", defaultOutput, "CSV output path (- = stdout)")
	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "only show errors")
}

// addNewFlags adds scaffolding flags to a FlagSet.
func addNewFlags(fs *flag.FlagSet, f *newFlags) {
	fs.StringVar(&f.title, "title", "", "policy title")
	fs.StringVar(&f.version, "version", "", "policy version")
	fs.StringVar(&f.owner, "owner", "", "policy owner")
	fs.StringVar(&f.reviewed, "reviewed", "", "last review date (YYYY-MM-DD or today)")
	fs.StringVar(&f.subtitle, "subtitle", "", "policy subtitle")
	fs.StringSliceVar(&f.appliesTo, "applies-to", nil, "scopes the policy applies to (repeatable)")
	fs.StringSliceVar(&f.refs, "refs", nil, "control references, e.g. PR.AC-01 (repeatable)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	fs.BoolVar(&f.noInput, "no-input", false, "never prompt; use defaults for missing fields")
}
