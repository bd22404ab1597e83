package export

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writePolicy(t *testing.T, dir, name, title string) {
	t.Helper()
	content := "---\ntitle: " + title + "\nversion: \"1.0\"\nowner: CISO\nlast_reviewed: 2025-03-01\napplies_to: [All staff, Vendors]\nrefs: [ISO 27001]\n---\n# Body\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestScanPolicies / TestWriteIndex
// ---------------------------------------------------------------------------

func TestScanPolicies_SortedAndParsed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePolicy(t, dir, "b.md", "Beta")
	writePolicy(t, dir, "a.md", "Alpha")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanPolicies(dir)
	if err != nil {
		t.Fatalf("ScanPolicies() error = %v", err)
	}
	if len(entries) != 2 || entries[0].File != "a.md" || entries[1].File != "b.md" {
		t.Fatalf("entries = %+v", entries)
	}

	var buf bytes.Buffer
	if err := WriteIndex(&buf, entries); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	want := "file,title,version,owner,last_reviewed,applies_to,refs\n" +
		"a.md,Alpha,1.0,CISO,2025-03-01,All staff;Vendors,ISO 27001\n" +
		"b.md,Beta,1.0,CISO,2025-03-01,All staff;Vendors,ISO 27001\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPolicies_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := ScanPolicies(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrExport) {
		t.Errorf("error = %v, want ErrExport", err)
	}
}

func TestScanPolicies_BadFrontMatterNamesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("# no front matter"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := ScanPolicies(dir)
	if err == nil || !strings.Contains(err.Error(), "broken.md") {
		t.Errorf("error = %v, want mention of broken.md", err)
	}
}

func TestWriteIndex_EmptyHasHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteIndex(&buf, nil); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	if buf.String() != strings.Join(IndexHeader, ",")+"\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestParseRisks
// ---------------------------------------------------------------------------

func TestParseRisks_DefaultsApplied(t *testing.T) {
	t.Parallel()

	data := []byte(`
- id: R-001
  title: Phishing
  description: Credential theft by email.
  severity: High
  likelihood: Likely
  target_date: "2025-06-30"
  control_refs: [PR.AC-01, DE.AE-01]
- id: 2
  title: Lost laptop
  severity: Medium
  likelihood: Possible
  owner: IT
  status: Mitigating
  treatment: Transfer
`)

	risks, err := ParseRisks(data)
	if err != nil {
		t.Fatalf("ParseRisks() error = %v", err)
	}

	want := []Risk{
		{
			ID: "R-001", Title: "Phishing", Description: "Credential theft by email.",
			Severity: "High", Likelihood: "Likely", Owner: "CISO", Status: "Open", Treatment: "Mitigate",
			TargetDate: "2025-06-30", ControlRefs: []string{"PR.AC-01", "DE.AE-01"},
		},
		{
			ID: "2", Title: "Lost laptop", Severity: "Medium", Likelihood: "Possible",
			Owner: "IT", Status: "Mitigating", Treatment: "Transfer",
		},
	}
	if diff := cmp.Diff(want, risks); diff != "" {
		t.Errorf("risks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRisks_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"bad severity", "- {id: R1, title: T, severity: Huge, likelihood: Likely}"},
		{"bad likelihood", "- {id: R1, title: T, severity: Low, likelihood: Never}"},
		{"bad status", "- {id: R1, title: T, severity: Low, likelihood: Likely, status: Done}"},
		{"missing id", "- {title: T, severity: Low, likelihood: Likely}"},
		{"missing title", "- {id: R1, severity: Low, likelihood: Likely}"},
		{"bad date", "- {id: R1, title: T, severity: Low, likelihood: Likely, target_date: soon}"},
		{"unknown field", "- {id: R1, title: T, severity: Low, likelihood: Likely, impact: big}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRisks([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidRisk) {
				t.Errorf("ParseRisks() error = %v, want ErrInvalidRisk", err)
			}
		})
	}
}

func TestWriteRisks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteRisks(&buf, []Risk{{
		ID: "R-1", Title: "Phishing, targeted", Severity: "High", Likelihood: "Likely",
		Owner: "CISO", Status: "Open", Treatment: "Mitigate", ControlRefs: []string{"A", "B"},
	}})
	if err != nil {
		t.Fatalf("WriteRisks() error = %v", err)
	}

	want := strings.Join(RiskHeader, ",") + "\n" +
		`R-1,"Phishing, targeted",,High,Likely,CISO,Open,Mitigate,,A;B` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestWriteControls
// ---------------------------------------------------------------------------

func TestWriteControls_SeedCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteControls(&buf, CSFFramework, CSFControls()); err != nil {
		t.Fatalf("WriteControls() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header + 5 controls", len(lines))
	}
	if lines[0] != "framework,function,category,control_id,title,description" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "NIST CSF 2.0,IDENTIFY,GV,ID.GV-01,") {
		t.Errorf("first row = %q", lines[1])
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile
// ---------------------------------------------------------------------------

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "controls.csv")
	err := WriteFile(path, func(w io.Writer) error {
		return WriteControls(w, CSFFramework, CSFControls())
	})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestWriteFile_PropagatesWriterError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	err := WriteFile(filepath.Join(t.TempDir(), "x.csv"), func(io.Writer) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want sentinel", err)
	}
}
