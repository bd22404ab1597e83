package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  pdf        Render policies to PDF")
	fmt.Fprintln(w, "  html       Render policies to standalone HTML")
	fmt.Fprintln(w, "  latex      Write the LaTeX source without compiling")
	fmt.Fprintln(w, "  index      Write the policy index CSV")
	fmt.Fprintln(w, "  risks      Convert a YAML risk register to CSV")
	fmt.Fprintln(w, "  controls   Write the NIST CSF 2.0 control map CSV")
	fmt.Fprintln(w, "  new        Scaffold a new policy file")
	fmt.Fprintln(w, "  doctor     Check the TeX engine, Chrome and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'trustforge help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the pdf, html and latex commands.
func printRenderUsage(w io.Writer, kind outputKind) {
	fmt.Fprintf(w, "Usage: trustforge %s [input] [flags]\n", kind)
	fmt.Fprintln(w)
	switch kind {
	case outputHTML:
		fmt.Fprintln(w, "Render policies to standalone HTML pages.")
	case outputLaTeX:
		fmt.Fprintln(w, "Write <name>.tex and <name>.body.tex without running the TeX engine.")
	default:
		fmt.Fprintln(w, "Render policies to PDF. The xelatex engine runs two passes.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Policy file or directory (default: policiesDir from config, \"policies\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: out)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	if kind == outputPDF {
		fmt.Fprintln(w, "  -e, --engine <s>          PDF engine: xelatex, chrome")
		fmt.Fprintln(w, "      --timeout <d>         Engine timeout per run (default: 2m)")
	}
	fmt.Fprintln(w, "  -t, --theme <path>        Theme YAML (default: themes/neutral.yaml, then built-in)")
	fmt.Fprintln(w, "      --assets <dir>        Directory overriding embedded templates")
	fmt.Fprintln(w, "      --date-format <s>     last_reviewed display: iso, european, us, long, or tokens")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "      --deep-headings <s>   Headings 4-6: collapse, text")
	fmt.Fprintln(w, "      --footer <s>          Title page footer when the policy has none")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and debug logs")
}

// printIndexUsage prints usage for the index command.
func printIndexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge index [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write file, title, version, owner, last_reviewed, applies_to and refs")
	fmt.Fprintln(w, "of every *.md policy in dir as CSV.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       CSV path, - for stdout (default: out/policy_index.csv)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printRisksUsage prints usage for the risks command.
func printRisksUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge risks <register.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate a YAML risk register and write it as CSV.")
	fmt.Fprintln(w, "Missing owner, status and treatment default to CISO, Open and Mitigate.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       CSV path, - for stdout (default: out/risk_register.csv)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printControlsUsage prints usage for the controls command.
func printControlsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge controls [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the NIST CSF 2.0 seed control map as CSV.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       CSV path, - for stdout (default: out/control_map.csv)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge new <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a policy with front matter and a section skeleton.")
	fmt.Fprintln(w, "Missing fields are prompted for on a terminal.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --title <s>           Policy title (default: from file name)")
	fmt.Fprintln(w, "      --version <s>         Policy version (default: 1.0)")
	fmt.Fprintln(w, "      --owner <s>           Policy owner (default: CISO)")
	fmt.Fprintln(w, "      --reviewed <s>        Last review date, YYYY-MM-DD or today (default: today)")
	fmt.Fprintln(w, "      --subtitle <s>        Policy subtitle")
	fmt.Fprintln(w, "      --applies-to <s>      Scope, repeatable or comma-separated")
	fmt.Fprintln(w, "      --refs <s>            Control reference, repeatable or comma-separated")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
	fmt.Fprintln(w, "      --no-input            Never prompt")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trustforge doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the TeX engine, Chrome and environment.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "pdf":
		printRenderUsage(env.Stdout, outputPDF)
	case "html":
		printRenderUsage(env.Stdout, outputHTML)
	case "latex":
		printRenderUsage(env.Stdout, outputLaTeX)
	case "index":
		printIndexUsage(env.Stdout)
	case "risks":
		printRisksUsage(env.Stdout)
	case "controls":
		printControlsUsage(env.Stdout)
	case "new":
		printNewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: trustforge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: trustforge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
