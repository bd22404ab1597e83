// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-trustforge/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is overridable for tests.
var GOOS = runtime.GOOS

// ForCompilerNotFound suggests how to install a TeX distribution with the
// given engine, per platform.
func ForCompilerNotFound(engine string) string {
	switch GOOS {
	case "darwin":
		return format("install MacTeX (brew install --cask mactex-no-gui) to get " + engine)
	case "windows":
		return format("install MiKTeX or TeX Live and make sure " + engine + " is on PATH")
	default:
		if IsInContainer() {
			return format("add texlive-xetex and texlive-fonts-recommended to the image, or use --engine chrome")
		}
		return format("install TeX Live (apt install texlive-xetex) or use --engine chrome")
	}
}

// ForCompileLog points at the compiler log of a failed run.
func ForCompileLog(logPath string) string {
	if logPath == "" {
		return ""
	}
	return format("see " + logPath + " for the full compiler output")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for long policies or cold font caches, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/trustforge/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), ".config/trustforge") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFrontMatter lists the fields every policy must declare.
func ForFrontMatter() string {
	return format("start the file with a --- block declaring title, version, owner and last_reviewed (YYYY-MM-DD)")
}

// ForTheme explains how to pick or fix a theme.
func ForTheme() string {
	return format("colors are #RRGGBB; pass --theme path/to/theme.yaml or remove it to use the neutral theme")
}

// ForTemplate explains the template contract.
func ForTemplate() string {
	return format("a custom policy.tex must contain __POLICY_BODY__ exactly once")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
