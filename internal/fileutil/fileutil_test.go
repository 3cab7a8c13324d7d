package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanDocumentsHonorsIgnoreRules(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"README.md",
		"docs/guide.markdown",
		"docs/notes.txt",
		"node_modules/pkg/README.md",
		"drafts/skip.md",
	} {
		mustWriteFile(t, filepath.Join(root, rel), "# doc\n")
	}

	docs, err := ScanDocuments(root, []string{"drafts/"})
	if err != nil {
		t.Fatalf("ScanDocuments failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "guide.markdown"),
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
}

func TestCollectDocumentsMixesFilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "a\n")
	mustWriteFile(t, filepath.Join(root, "sub", "b.md"), "b\n")
	mustWriteFile(t, filepath.Join(root, "notes.txt"), "c\n")

	docs, err := CollectDocuments([]string{filepath.Join(root, "notes.txt"), root}, nil)
	if err != nil {
		t.Fatalf("CollectDocuments failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "sub", "b.md"),
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}

	if _, err := CollectDocuments([]string{filepath.Join(root, "missing")}, nil); err == nil {
		t.Fatalf("expected error for missing target")
	}
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	mustWriteFile(t, path, "same\n")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	changed, err := WriteIfChanged(path, []byte("same\n"))
	if err != nil || changed {
		t.Fatalf("expected no write for identical content, changed=%v err=%v", changed, err)
	}

	changed, err = WriteIfChanged(path, []byte("different\n"))
	if err != nil || !changed {
		t.Fatalf("expected write, changed=%v err=%v", changed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "different\n" {
		t.Fatalf("unexpected content %q (%v)", data, err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Mode().Perm() != 0600 {
		t.Fatalf("expected mode to be preserved, got %v (%v)", info.Mode(), err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestDedupeStringsKeepsOrder(t *testing.T) {
	got := DedupeStrings([]string{"b", "a", "b", "c", "a"})
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	if DedupeStrings(nil) != nil {
		t.Fatalf("expected nil for empty input")
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
