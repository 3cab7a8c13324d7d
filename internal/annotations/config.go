// Package annotations parses annotation files: two-level YAML-like documents
// mapping section names to path -> note entries.
//
//	# notes shown when a block has no selector
//	default:
//	  src/: Application code
//	  README.md: "Start here"
//	api:
//	  api/v1/: 'Stable endpoints'
package annotations

import (
	"sort"
	"strings"
)

// DefaultSection is the canonical name of the section used when a block has
// no selector. The bare key "default" maps to it as well.
const DefaultSection = "[default]"

// FileNames are the annotation file names looked up during discovery, in
// priority order.
var FileNames = []string{".tree-annotations.yml", ".tree-annotations.yaml"}

// Config is a parsed annotation file. It is read-only after Parse.
type Config struct {
	Path     string
	Sections map[string]map[string]string
}

// NewConfig returns an empty config whose default section exists.
func NewConfig(path string) *Config {
	return &Config{
		Path:     path,
		Sections: map[string]map[string]string{DefaultSection: {}},
	}
}

// Section returns the notes of a section by exact name.
func (c *Config) Section(name string) (map[string]string, bool) {
	if c == nil {
		return nil, false
	}
	notes, ok := c.Sections[CanonicalSection(name)]
	return notes, ok
}

// Default returns the default section's notes. It is never nil for a parsed
// config.
func (c *Config) Default() map[string]string {
	if c == nil {
		return nil
	}
	return c.Sections[DefaultSection]
}

// SectionNames returns every section name in sorted order.
func (c *Config) SectionNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalSection maps the "default" alias to DefaultSection and returns any
// other name unchanged.
func CanonicalSection(name string) string {
	if name == "default" {
		return DefaultSection
	}
	return name
}

// NormalizeKey converts a path key to its stored form: posix separators, no
// leading "./" or "/", trailing "/" kept for directories. The empty key and
// "./" both become ".".
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, `\`, "/")
	for {
		trimmed := strings.TrimPrefix(key, "./")
		trimmed = strings.TrimPrefix(trimmed, "/")
		if trimmed == key {
			break
		}
		key = trimmed
	}
	if key == "" || key == "." {
		return "."
	}
	return key
}
