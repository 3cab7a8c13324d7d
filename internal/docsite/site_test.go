package docsite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildRendersReadmeAndRules(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "README.md"), "# mdtree\n\nKeeps `tree` blocks honest.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	mustWriteFile(t, filepath.Join(root, "docs", "rules", "tree-sync.md"), "# tree-sync\n\nChecks drift.\n")
	mustWriteFile(t, filepath.Join(root, "docs", "rules", "annotations.md"), "# annotations\n")
	mustWriteFile(t, filepath.Join(root, "docs", "rules", "notes.txt"), "ignored\n")
	mustWriteFile(t, filepath.Join(root, "site", "stale.html"), "old\n")

	result, err := Build(Options{Root: root})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %+v", result.Pages)
	}
	if result.Pages[1].Output != "rules/annotations.html" {
		t.Fatalf("expected rules sorted by name, got %+v", result.Pages)
	}

	index := readFile(t, filepath.Join(root, "site", "index.html"))
	for _, want := range []string{
		"<title>mdtree</title>",
		`<h1 id="mdtree">mdtree</h1>`,
		"<table>",
		`<a href="./rules/tree-sync.html">tree-sync</a>`,
		`<a href="./rules/annotations.html">annotations</a>`,
	} {
		if !strings.Contains(index, want) {
			t.Fatalf("expected %q in index.html:\n%s", want, index)
		}
	}

	rule := readFile(t, filepath.Join(root, "site", "rules", "tree-sync.html"))
	if !strings.Contains(rule, "<title>tree-sync | mdtree</title>") || !strings.Contains(rule, `<a href="../index.html">Home</a>`) {
		t.Fatalf("unexpected rule page:\n%s", rule)
	}

	if _, err := os.Stat(filepath.Join(root, "site", "stale.html")); !os.IsNotExist(err) {
		t.Fatalf("expected output directory to be cleaned")
	}
}

func TestBuildRequiresReadme(t *testing.T) {
	if _, err := Build(Options{Root: t.TempDir()}); err == nil {
		t.Fatalf("expected error without README.md")
	}
}

func TestBuildRefusesRootAsOutput(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "README.md"), "# x\n")
	if _, err := Build(Options{Root: root, OutDir: root}); err == nil {
		t.Fatalf("expected refusal to clean the repository root")
	}
	if _, err := os.Stat(filepath.Join(root, "README.md")); err != nil {
		t.Fatalf("README.md must survive: %v", err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
