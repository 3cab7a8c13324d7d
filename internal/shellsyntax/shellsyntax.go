// Package shellsyntax rejects fence info strings that rely on shell features
// (redirections, substitutions, expansions), using the tree-sitter bash
// grammar.
package shellsyntax

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
)

// Checker parses info strings with tree-sitter. It is safe for concurrent use.
type Checker struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewChecker creates a checker with the bash grammar loaded.
func NewChecker() *Checker {
	p := sitter.NewParser()
	p.SetLanguage(bash.GetLanguage())
	return &Checker{parser: p}
}

// Constructs whose meaning depends on a shell. The listing runs without one,
// so "|" and ";" reach tree as literal pattern characters and are allowed.
var unsupportedNodes = map[string]string{
	"redirected_statement":  "redirection",
	"file_redirect":         "redirection",
	"heredoc_redirect":      "here-document",
	"herestring_redirect":   "here-string",
	"subshell":              "subshell",
	"command_substitution":  "command substitution",
	"process_substitution":  "process substitution",
	"expansion":             "parameter expansion",
	"simple_expansion":      "parameter expansion",
	"arithmetic_expansion":  "arithmetic expansion",
	"variable_assignment":   "variable assignment",
	"compound_statement":    "compound statement",
	"negated_command":       "negated command",
	"if_statement":          "control flow",
	"for_statement":         "control flow",
	"c_style_for_statement": "control flow",
	"while_statement":       "control flow",
	"case_statement":        "control flow",
	"function_definition":   "function definition",
	"declaration_command":   "declaration",
	"unset_command":         "declaration",
	"test_command":          "test expression",
}

// Check returns an error naming the first unsupported construct in info.
// Text the grammar cannot parse is left to the word lexer and passes.
func (c *Checker) Check(info string) error {
	if c == nil {
		return nil
	}
	content := []byte(info)

	c.mu.Lock()
	tree, err := c.parser.ParseCtx(context.Background(), nil, content)
	c.mu.Unlock()
	if err != nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if construct := findUnsupported(child); construct != "" {
			return fmt.Errorf("%s is not supported in tree blocks", construct)
		}
	}
	return nil
}

func findUnsupported(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	if construct, ok := unsupportedNodes[node.Type()]; ok {
		return construct
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if construct := findUnsupported(node.NamedChild(i)); construct != "" {
			return construct
		}
	}
	return ""
}
