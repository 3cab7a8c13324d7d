package block

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/shellsyntax"
)

func TestScanFindsTreeBlocks(t *testing.T) {
	doc := strings.Join([]string{
		"# Layout",
		"",
		"```sh tree -L 2 src {api}",
		"src",
		"└── main.go",
		"```",
		"",
		"```go",
		"package main",
		"```",
	}, "\n")

	result := Scan(doc)
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}
	want := []Block{{
		Info:          "sh tree -L 2 src {api}",
		Args:          []string{"-L", "2", "src"},
		Selector:      "api",
		HasSelector:   true,
		Fence:         "```",
		StartLine:     3,
		BodyStartLine: 4,
		OpenLine:      2,
		CloseLine:     5,
		Body:          "src\n└── main.go",
	}}
	if diff := cmp.Diff(want, result.Blocks); diff != "" {
		t.Fatalf("unexpected blocks (-want +got):\n%s", diff)
	}
}

func TestScanUnterminatedBlock(t *testing.T) {
	doc := "intro\n```bash tree\n.\n└── a.txt\n"

	result := Scan(doc)
	if len(result.Blocks) != 0 {
		t.Fatalf("expected zero blocks, got %d", len(result.Blocks))
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected exactly one issue, got %+v", result.Issues)
	}
	if result.Issues[0].Kind != diag.KindUnterminatedBlock || result.Issues[0].Line != 2 {
		t.Fatalf("unexpected issue %+v", result.Issues[0])
	}
}

func TestScanStopsAfterUnterminatedFence(t *testing.T) {
	doc := "```sh tree a\na\n```\n````text\n```sh tree b\nb\n```\n"

	result := Scan(doc)
	if len(result.Blocks) != 1 || result.Blocks[0].Args[0] != "a" {
		t.Fatalf("expected only the first block, got %+v", result.Blocks)
	}
	if len(result.Issues) != 1 || result.Issues[0].Line != 4 {
		t.Fatalf("expected unterminated issue on line 4, got %+v", result.Issues)
	}
}

func TestScanMultipleSelectorsSkipsOnlyThatBlock(t *testing.T) {
	doc := strings.Join([]string{
		"```sh tree {x} {y}",
		".",
		"```",
		"```sh tree docs",
		"docs",
		"```",
	}, "\n")

	result := Scan(doc)
	if len(result.Issues) != 1 {
		t.Fatalf("expected one issue, got %+v", result.Issues)
	}
	if result.Issues[0].Kind != diag.KindMultipleSelectors || result.Issues[0].Line != 1 {
		t.Fatalf("unexpected issue %+v", result.Issues[0])
	}
	if len(result.Blocks) != 1 || result.Blocks[0].StartLine != 4 {
		t.Fatalf("expected sibling block to be scanned, got %+v", result.Blocks)
	}
}

func TestScanIgnoresNonMatchingFences(t *testing.T) {
	doc := strings.Join([]string{
		"```",
		"plain",
		"```",
		"```sh ls -la",
		"x",
		"```",
		"```python tree",
		"x",
		"```",
		"````markdown",
		"```sh tree",
		"inside an example",
		"```",
		"````",
	}, "\n")

	result := Scan(doc)
	if len(result.Blocks) != 0 || len(result.Issues) != 0 {
		t.Fatalf("expected nothing, got blocks=%+v issues=%+v", result.Blocks, result.Issues)
	}
}

func TestScanCloseFenceMustMatchExactly(t *testing.T) {
	doc := strings.Join([]string{
		"````sh tree",
		".",
		"```",
		"└── a",
		"````",
	}, "\n")

	result := Scan(doc)
	if len(result.Blocks) != 1 {
		t.Fatalf("expected one block, got %+v", result)
	}
	if got := result.Blocks[0].Body; got != ".\n```\n└── a" {
		t.Fatalf("expected shorter fence to stay in the body, got %q", got)
	}
	if result.Blocks[0].CloseLine <= result.Blocks[0].OpenLine {
		t.Fatalf("close line must follow open line: %+v", result.Blocks[0])
	}
}

func TestScanIndentedFenceDedentsBody(t *testing.T) {
	doc := "- item\n\n  ```sh tree\n  .\n  └── a\n  ```\n"

	result := Scan(doc)
	if len(result.Blocks) != 1 {
		t.Fatalf("expected one block, got %+v", result)
	}
	blk := result.Blocks[0]
	if blk.Indent != "  " || blk.Body != ".\n└── a" {
		t.Fatalf("unexpected block %+v", blk)
	}
}

func TestScanUnterminatedQuoteInInvocation(t *testing.T) {
	doc := "```sh tree 'docs\n.\n```\n```sh 'unrelated\n```\n"

	result := Scan(doc)
	if len(result.Blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", result.Blocks)
	}
	if len(result.Issues) != 1 || result.Issues[0].Kind != diag.KindUnterminatedQuote {
		t.Fatalf("expected one unterminated quote issue, got %+v", result.Issues)
	}
}

type rejectAll struct{}

func (rejectAll) Check(string) error { return errors.New("redirection is not supported in tree blocks") }

func TestScanRejectsUnsupportedSyntax(t *testing.T) {
	doc := "```sh tree > out.txt\n.\n```\n"

	result := Scanner{Syntax: rejectAll{}}.Scan(doc)
	if len(result.Blocks) != 0 {
		t.Fatalf("expected block to be skipped, got %+v", result.Blocks)
	}
	want := []diag.Issue{{Line: 1, Kind: diag.KindUnsupportedSyntax, Detail: "redirection is not supported in tree blocks"}}
	if diff := cmp.Diff(want, result.Issues, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected issues (-want +got):\n%s", diff)
	}
}

func TestScanKeepsPatternAlternation(t *testing.T) {
	doc := "```sh tree -I node_modules|dist .\n.\n```\n"

	result := Scanner{Syntax: shellsyntax.NewChecker()}.Scan(doc)
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}
	if len(result.Blocks) != 1 {
		t.Fatalf("expected one block, got %+v", result.Blocks)
	}
	if diff := cmp.Diff([]string{"-I", "node_modules|dist", "."}, result.Blocks[0].Args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestScanHandlesCRLF(t *testing.T) {
	doc := "```sh tree\r\n.\r\n└── a\r\n```\r\n"

	result := Scan(doc)
	if len(result.Blocks) != 1 || result.Blocks[0].Body != ".\n└── a" {
		t.Fatalf("unexpected result %+v", result)
	}
}
