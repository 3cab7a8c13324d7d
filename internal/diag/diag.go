// Package diag holds the diagnostic types shared by every stage of a tree
// block check: typed errors for the failure kinds and the Issue records
// surfaced to callers.
package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure or finding.
type Kind string

const (
	KindUnterminatedQuote        Kind = "unterminated_quote"
	KindUnterminatedBlock        Kind = "unterminated_block"
	KindMultipleSelectors        Kind = "multiple_selectors"
	KindUnsupportedSyntax        Kind = "unsupported_syntax"
	KindMalformedConfig          Kind = "malformed_config"
	KindCommandFailed            Kind = "command_failed"
	KindMultiplePathsUnsupported Kind = "multiple_paths_unsupported"
	KindSelectorUnresolved       Kind = "selector_unresolved"
	KindUnusedAnnotation         Kind = "unused_annotation"
	KindOutOfSync                Kind = "out_of_sync"
)

// Error is the typed error returned by the lexer, scanner, config parser and
// renderer. File and Line are optional position information.
type Error struct {
	Kind   Kind
	File   string
	Line   int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Detail)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind so callers can test with sentinel values
// such as &Error{Kind: KindMalformedConfig}.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Detail == "" && other.File == "" && other.Line == 0
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind, true
	}
	return "", false
}

// Issue is the uniform diagnostic unit reported for a document.
type Issue struct {
	Line           int      `json:"line"`
	Kind           Kind     `json:"kind"`
	Detail         string   `json:"detail"`
	OutOfSyncPaths []string `json:"out_of_sync_paths,omitempty"`
}

// IssueFromError converts a block-scoped failure into an issue attributed to
// line. Untyped errors keep their message and get no kind.
func IssueFromError(line int, err error) Issue {
	issue := Issue{Line: line, Detail: err.Error()}
	var typed *Error
	if errors.As(err, &typed) {
		issue.Kind = typed.Kind
		issue.Detail = typed.Detail
		if typed.Err != nil {
			issue.Detail += ": " + typed.Err.Error()
		}
	}
	return issue
}

// Report groups the issues of one document pass by category.
type Report struct {
	Parser   []Issue `json:"parser,omitempty"`
	Sync     []Issue `json:"sync,omitempty"`
	Selector []Issue `json:"selector,omitempty"`
	Unused   []Issue `json:"unused,omitempty"`
}

// Category names used when a report is flattened.
const (
	CategoryParser   = "parser"
	CategorySync     = "sync"
	CategorySelector = "selector"
	CategoryUnused   = "unused"
)

// Count returns the total number of issues.
func (r *Report) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Parser) + len(r.Sync) + len(r.Selector) + len(r.Unused)
}

// CategorizedIssue pairs an issue with its report category.
type CategorizedIssue struct {
	Category string `json:"category"`
	Issue
}

// Flatten returns every issue ordered by line, then category.
func (r *Report) Flatten() []CategorizedIssue {
	if r == nil {
		return nil
	}
	out := make([]CategorizedIssue, 0, r.Count())
	add := func(category string, issues []Issue) {
		for _, issue := range issues {
			out = append(out, CategorizedIssue{Category: category, Issue: issue})
		}
	}
	add(CategoryParser, r.Parser)
	add(CategorySync, r.Sync)
	add(CategorySelector, r.Selector)
	add(CategoryUnused, r.Unused)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}
