package annotations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guides")
	mustMkdir(t, nested)
	configPath := filepath.Join(root, ".tree-annotations.yml")
	mustWrite(t, configPath, "default:\n  docs/: Documentation\n")

	loader := NewLoader()
	if got := loader.Discover(nested, root); got != configPath {
		t.Fatalf("expected %s, got %q", configPath, got)
	}
	// second lookup is served from the cache
	if got := loader.Discover(filepath.Join(root, "docs"), root); got != configPath {
		t.Fatalf("expected cached %s, got %q", configPath, got)
	}
}

func TestLoaderDiscoverPrefersYmlAndStopsAtRoot(t *testing.T) {
	outer := t.TempDir()
	mustWrite(t, filepath.Join(outer, ".tree-annotations.yml"), "default:\n  a: b\n")
	repo := filepath.Join(outer, "repo")
	mustMkdir(t, filepath.Join(repo, "docs"))

	loader := NewLoader()
	if got := loader.Discover(filepath.Join(repo, "docs"), repo); got != "" {
		t.Fatalf("expected discovery to stop at the repo root, got %q", got)
	}

	mustWrite(t, filepath.Join(repo, ".tree-annotations.yaml"), "default:\n  a: b\n")
	mustWrite(t, filepath.Join(repo, ".tree-annotations.yml"), "default:\n  a: b\n")
	loader.Reset()
	if got := loader.Discover(filepath.Join(repo, "docs"), repo); got != filepath.Join(repo, ".tree-annotations.yml") {
		t.Fatalf("expected .yml to win, got %q", got)
	}
}

func TestLoaderLoadCachesUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".tree-annotations.yml")
	mustWrite(t, path, "default:\n  a.txt: first\n")

	loader := NewLoader()
	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	again, err := loader.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != again {
		t.Fatalf("expected cached config to be reused")
	}

	mustWrite(t, path, "default:\n  a.txt: second version\n")
	updated, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load after edit failed: %v", err)
	}
	if got := updated.Default()["a.txt"]; got != "second version" {
		t.Fatalf("expected reparsed note, got %q", got)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	if _, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
