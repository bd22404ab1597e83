package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	trustforge "github.com/alnah/go-trustforge"
	"github.com/alnah/go-trustforge/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// policyFile represents a single policy to render.
type policyFile struct {
	InputPath string
	OutDir    string // Directory receiving the artifacts
	Name      string // Artifact stem
}

// discoverFiles finds all policy files to render. A directory is walked
// recursively and its layout is mirrored under outputDir.
func discoverFiles(inputPath, outputDir string) ([]policyFile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []policyFile{newPolicyFile(inputPath, outputDir, "")}, nil
	}

	var files []policyFile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		files = append(files, newPolicyFile(path, outputDir, inputPath))
		return nil
	})

	return files, err
}

// newPolicyFile derives the artifact location of a policy file.
func newPolicyFile(inputPath, outputDir, baseInputDir string) policyFile {
	base := filepath.Base(inputPath)
	f := policyFile{
		InputPath: inputPath,
		Name:      strings.TrimSuffix(base, filepath.Ext(base)),
	}

	switch {
	case outputDir == "":
		f.OutDir = filepath.Dir(inputPath)
	case baseInputDir != "":
		f.OutDir = outputDir
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			f.OutDir = filepath.Join(outputDir, filepath.Dir(relPath))
		}
	default:
		f.OutDir = outputDir
	}
	return f
}

// artifactPath is where kind is written for f.
func (f policyFile) artifactPath(kind outputKind) string {
	return fileutil.OutputPath(f.InputPath, f.OutDir, kind.ext())
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > trustforge.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, trustforge.MaxPoolSize)
	}
	return nil
}
