// Package block finds fenced code blocks whose info string is a tree
// invocation inside a Markdown document.
package block

import (
	"regexp"
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/shellwords"
)

// ListingCommand is the command name a recognized info string must invoke.
const ListingCommand = "tree"

// ShellAliases are the accepted first words of a recognized info string.
var ShellAliases = []string{"sh", "bash", "zsh", "shell", "console"}

var (
	fenceOpenPattern = regexp.MustCompile("^([ \t]*)(`{3,})(.*)$")
	selectorPattern  = regexp.MustCompile(`^\{([A-Za-z_][A-Za-z0-9_.-]*)\}$`)
)

// Block is one fenced tree block. Line indices refer to the scanned snapshot.
type Block struct {
	Info        string   `json:"info"`
	Args        []string `json:"args"`
	Selector    string   `json:"selector,omitempty"`
	HasSelector bool     `json:"has_selector,omitempty"`
	Indent      string   `json:"indent,omitempty"`
	Fence       string   `json:"fence"`

	StartLine     int `json:"start_line"`      // 1-based line of the opening fence
	BodyStartLine int `json:"body_start_line"` // 1-based line of the first body line
	OpenLine      int `json:"open_line"`       // 0-based index of the opening fence
	CloseLine     int `json:"close_line"`      // 0-based index of the closing fence

	Body string `json:"body"`
}

// Lines returns the body split into lines. An empty body has no lines.
func (b Block) Lines() []string {
	if b.Body == "" {
		return nil
	}
	return strings.Split(b.Body, "\n")
}

// SyntaxChecker validates the raw info string of a recognized block.
type SyntaxChecker interface {
	Check(info string) error
}

// Result is the outcome of scanning one document.
type Result struct {
	Blocks []Block
	Issues []diag.Issue
}

// Scanner scans documents. The zero value scans without shell syntax checks.
type Scanner struct {
	Syntax SyntaxChecker
}

// Scan scans text with the zero Scanner.
func Scan(text string) Result {
	return Scanner{}.Scan(text)
}

// Scan walks the lines of text and collects recognized tree blocks.
func (s Scanner) Scan(text string) Result {
	lines := SplitLines(text)
	result := Result{}

	for i := 0; i < len(lines); i++ {
		match := fenceOpenPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		indent, fence, info := match[1], match[2], strings.TrimSpace(match[3])
		// a backtick in the info string makes this inline code, not a fence
		if strings.Contains(info, "`") {
			continue
		}

		closeIdx := findClose(lines, i+1, indent, fence)
		if closeIdx < 0 {
			result.Issues = append(result.Issues, diag.Issue{
				Line:   i + 1,
				Kind:   diag.KindUnterminatedBlock,
				Detail: "code fence " + fence + " is never closed",
			})
			break
		}

		blk, recognized, err := s.interpret(info)
		if err != nil {
			result.Issues = append(result.Issues, diag.IssueFromError(i+1, err))
		} else if recognized {
			blk.Indent = indent
			blk.Fence = fence
			blk.StartLine = i + 1
			blk.BodyStartLine = i + 2
			blk.OpenLine = i
			blk.CloseLine = closeIdx
			blk.Body = strings.Join(dedent(lines[i+1:closeIdx], indent), "\n")
			result.Blocks = append(result.Blocks, blk)
		}
		i = closeIdx
	}

	return result
}

func (s Scanner) interpret(info string) (Block, bool, error) {
	tokens, err := shellwords.Split(info)
	if err != nil {
		if looksLikeInvocation(strings.Fields(info)) {
			return Block{}, false, err
		}
		return Block{}, false, nil
	}
	if !looksLikeInvocation(tokens) {
		return Block{}, false, nil
	}

	if s.Syntax != nil {
		if err := s.Syntax.Check(info); err != nil {
			return Block{}, false, &diag.Error{Kind: diag.KindUnsupportedSyntax, Detail: err.Error()}
		}
	}

	blk := Block{Info: info, Args: make([]string, 0, len(tokens)-2)}
	for _, token := range tokens[2:] {
		m := selectorPattern.FindStringSubmatch(token)
		if m == nil {
			blk.Args = append(blk.Args, token)
			continue
		}
		if blk.HasSelector {
			return Block{}, false, diag.Errorf(diag.KindMultipleSelectors, "multiple annotation selectors: {%s} and {%s}", blk.Selector, m[1])
		}
		blk.Selector = m[1]
		blk.HasSelector = true
	}
	return blk, true, nil
}

func looksLikeInvocation(tokens []string) bool {
	if len(tokens) < 2 || tokens[1] != ListingCommand {
		return false
	}
	for _, alias := range ShellAliases {
		if tokens[0] == alias {
			return true
		}
	}
	return false
}

func findClose(lines []string, from int, indent, fence string) int {
	want := indent + fence
	for j := from; j < len(lines); j++ {
		if strings.TrimRight(lines[j], " \t") == want {
			return j
		}
	}
	return -1
}

func dedent(lines []string, indent string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, indent)
	}
	return out
}

// SplitLines normalizes line endings and splits text into lines. A single
// trailing newline does not produce an empty final line.
func SplitLines(text string) []string {
	text = NormalizeNewlines(text)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// NormalizeNewlines converts \r\n and lone \r to \n.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
