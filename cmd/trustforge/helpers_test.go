package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePolicy = `---
title: Access Control Policy
version: "1.2"
owner: CISO
last_reviewed: 2025-01-01
---
# Purpose

Limit access to **need to know**.

## Scope

All production systems.
`

// fixedNow is the clock used by tests.
var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// testEnv returns an environment writing to buffers. Prompts are disabled
// and external tools are not found.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		LookPath: func(string) (string, error) {
			return "", os.ErrNotExist
		},
	}
	return env, &stdout, &stderr
}

// runCLI runs the CLI with args after the program name.
func runCLI(t *testing.T, env *Environment, args ...string) int {
	t.Helper()
	return run(context.Background(), append([]string{"trustforge"}, args...), env)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, label, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("%s should contain %q, got:\n%s", label, want, got)
	}
}
