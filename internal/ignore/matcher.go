// Package ignore decides which paths document discovery skips, using
// gitignore-like rules from .mdtreeignore on top of built-in defaults.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// FileName is the per-repository ignore file read by LoadFile.
const FileName = ".mdtreeignore"

// DefaultRules are prepended to user rules. A user negation can re-include
// any of them.
var DefaultRules = []string{
	".git/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"target/",
	"site/",
	"__pycache__/",
}

type rule struct {
	pattern  *regexp.Regexp
	negated  bool
	dirOnly  bool
	anchored bool
	nested   bool // pattern contains a "/"
}

// Matcher applies rules with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// NewMatcher builds a matcher from user rules, after the defaults.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(DefaultRules)+len(userRules))
	all = append(all, DefaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}
	return &Matcher{rules: rules}
}

// LoadFile reads the ignore file at the root of dir. A missing file yields
// no rules.
func LoadFile(dir string) ([]string, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return rules, nil
}

// ShouldIgnore reports whether relPath is excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	if m == nil {
		return false
	}
	relPath = normalizePath(relPath)
	ignored := false
	for _, r := range m.rules {
		if r.matches(relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	var parsed rule
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	re, err := regexp.Compile("^" + globToRegex(line) + "$")
	if err != nil {
		return rule{}, false
	}
	parsed.pattern = re
	parsed.nested = strings.Contains(line, "/")
	return parsed, true
}

func (r rule) matches(relPath string, isDir bool) bool {
	if r.dirOnly {
		return r.matchesDirectory(relPath) || (isDir && r.pattern.MatchString(path.Base(relPath)))
	}
	if r.anchored {
		return r.pattern.MatchString(relPath)
	}

	parts := strings.Split(relPath, "/")
	if r.nested {
		for i := range parts {
			if r.pattern.MatchString(strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}
	for _, segment := range parts {
		if r.pattern.MatchString(segment) {
			return true
		}
	}
	return false
}

// matchesDirectory reports whether relPath is the directory itself or lies
// below it.
func (r rule) matchesDirectory(relPath string) bool {
	parts := strings.Split(relPath, "/")
	for i := range parts {
		if r.pattern.MatchString(strings.Join(parts[:i+1], "/")) {
			return true
		}
		if r.anchored {
			continue
		}
		if r.pattern.MatchString(parts[i]) && !r.nested {
			return true
		}
	}
	return false
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case ch == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			b.WriteString(".*")
			i++
		case ch == '*':
			b.WriteString("[^/]*")
		case ch == '?':
			b.WriteString("[^/]")
		case strings.ContainsRune(`.+()|[]{}^$\`, rune(ch)):
			b.WriteByte('\\')
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	return p
}
