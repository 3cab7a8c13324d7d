package drift

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/morozRed/mdtree/internal/block"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		body     string
		rendered string
		want     []string
	}{
		{
			name:     "identical bodies",
			args:     []string{"demo"},
			body:     "demo\n└── a.txt",
			rendered: "demo\n└── a.txt",
			want:     nil,
		},
		{
			name:     "renamed entry reports both sides",
			args:     []string{"demo"},
			body:     "demo\n├── a.txt\n└── old.txt",
			rendered: "demo\n├── a.txt\n└── b.txt",
			want:     []string{"demo/b.txt", "demo/old.txt"},
		},
		{
			name:     "added entry in current directory",
			body:     ".\n└── a.txt",
			rendered: ".\n├── a.txt\n└── z.txt",
			want:     []string{"a.txt", "z.txt"},
		},
		{
			name:     "root qualified without leading dot slash",
			args:     []string{"-L", "2", "./src/"},
			body:     "./src/\n└── main.go",
			rendered: "./src/\n└── util.go",
			want:     []string{"src/util.go", "src/main.go"},
		},
		{
			name:     "summary only drift has no paths",
			args:     []string{"demo"},
			body:     "demo\n└── a.txt\n\n0 directories, 2 files",
			rendered: "demo\n└── a.txt\n\n0 directories, 1 file",
			want:     nil,
		},
		{
			name:     "nested entries keep their directory",
			args:     []string{"demo"},
			body:     "demo\n└── sub\n    └── x.go",
			rendered: "demo\n└── sub\n    └── y.go",
			want:     []string{"demo/sub/y.go", "demo/sub/x.go"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Diff(block.Block{Args: tc.args, Body: tc.body}, tc.rendered)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected paths (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQualifyRoot(t *testing.T) {
	cases := []struct {
		root, rel, want string
	}{
		{root: ".", rel: "a.txt", want: "a.txt"},
		{root: "./", rel: "a.txt", want: "a.txt"},
		{root: "demo", rel: ".", want: "demo"},
		{root: "demo/", rel: "sub/x.go", want: "demo/sub/x.go"},
		{root: `docs\api`, rel: "v1", want: "docs/api/v1"},
		{root: "././a//b/", rel: "c", want: "a/b/c"},
	}
	for _, tc := range cases {
		if got := QualifyRoot(tc.root, tc.rel); got != tc.want {
			t.Fatalf("QualifyRoot(%q, %q) = %q, want %q", tc.root, tc.rel, got, tc.want)
		}
	}
}
