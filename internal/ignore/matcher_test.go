package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"vendor/**",
		"!vendor/keep/README.md",
		"*.draft.md",
		"!site/",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: ".git/HEAD", isDir: false, ignored: true},
		{path: "node_modules/pkg/README.md", isDir: false, ignored: true},
		{path: "packages/web/node_modules", isDir: true, ignored: true},
		{path: "vendor/lib/README.md", isDir: false, ignored: true},
		{path: "vendor/keep/README.md", isDir: false, ignored: false},
		{path: "docs/intro.draft.md", isDir: false, ignored: true},
		{path: "site/index.md", isDir: false, ignored: false},
		{path: "docs/guide.md", isDir: false, ignored: false},
	}

	for _, tc := range cases {
		got := m.ShouldIgnore(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_NegatedDirectoryRule(t *testing.T) {
	m := NewMatcher([]string{
		"archive/",
		"!archive/current/",
	})

	if !m.ShouldIgnore("archive/2019/notes.md", false) {
		t.Fatalf("expected archive/2019/notes.md to be ignored")
	}
	if m.ShouldIgnore("archive/current/notes.md", false) {
		t.Fatalf("expected archive/current/notes.md to be included")
	}
}

func TestMatcher_AnchoredRule(t *testing.T) {
	m := NewMatcher([]string{"/CHANGELOG.md"})

	if !m.ShouldIgnore("CHANGELOG.md", false) {
		t.Fatalf("expected root CHANGELOG.md to be ignored")
	}
	if m.ShouldIgnore("pkg/CHANGELOG.md", false) {
		t.Fatalf("expected nested CHANGELOG.md to be kept")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	rules, err := LoadFile(dir)
	if err != nil || rules != nil {
		t.Fatalf("expected no rules without a file, got %v (%v)", rules, err)
	}

	content := "# generated docs\nsite/\n\n!site/keep.md\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rules, err = LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if diff := cmp.Diff([]string{"site/", "!site/keep.md"}, rules); diff != "" {
		t.Fatalf("unexpected rules (-want +got):\n%s", diff)
	}
}
