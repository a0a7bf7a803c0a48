package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mobanhawi/dux/internal/config"
)

func TestRunScan_GivenFlatDirectory_ThenReturnsSnapshot(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("payload"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	snapshot, err := runScan(root, config.DefaultConfig(), false)
	if err != nil {
		t.Fatalf("runScan() error = %v", err)
	}
	if snapshot.Root.Path != root {
		t.Errorf("snapshot root path = %q, want %q", snapshot.Root.Path, root)
	}
	if len(snapshot.Root.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(snapshot.Root.Children))
	}
}

func TestRunScan_GivenMissingPath_ThenReturnsError(t *testing.T) {
	if _, err := runScan(filepath.Join(t.TempDir(), "missing"), config.DefaultConfig(), false); err == nil {
		t.Error("expected an error for a missing scan root")
	}
}

func TestParseCategories(t *testing.T) {
	got := parseCategories([]string{"temp", " cache "})
	if !got[config.InsightCategory("temp")] {
		t.Error("expected 'temp' category to be set")
	}
	if !got[config.InsightCategory("cache")] {
		t.Error("expected trimmed 'cache' category to be set")
	}
	if len(got) != 2 {
		t.Errorf("expected 2 categories, got %d", len(got))
	}
}

func TestNewScanCommand_GivenDirectory_ThenPrintsSummary(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "f.txt"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := newScanCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{root, "--no-progress"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a summary report, got nothing")
	}
}

func TestNewScanCommand_GivenCategoryFilter_ThenPrintsOnlyMatchingInsights(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, "node_modules")
	if err := os.Mkdir(cacheDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "pkg.js"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := newScanCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{root, "--no-progress", "--category", "build_artifact"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "node_modules") {
		t.Errorf("expected the node_modules insight in the output, got:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, config.BuildArtifact.Label()+"\t") {
			t.Errorf("expected only %s lines, got %q", config.BuildArtifact.Label(), line)
		}
	}
}
