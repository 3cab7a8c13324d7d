package listing

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RootPath is the relative path of the first row of every listing.
const RootPath = "."

var (
	boxEntryPattern   = regexp.MustCompile(`^((?:│   |    )*)(?:├── |└── )(.*)$`)
	asciiEntryPattern = regexp.MustCompile("^((?:\\|   |    )*)(?:\\|-- |`-- )(.*)$")
	commentPattern    = regexp.MustCompile(`\s+#(?:\s.*)?$`)
)

const typeIndicators = "/@=*|"

// Row is one line of listing output. Path is nil for lines that are not
// entries (report footers, blank lines).
type Row struct {
	Line  string  `json:"line"`
	Path  *string `json:"path,omitempty"`
	IsDir bool    `json:"is_dir"`
}

// RelPath returns the row path or "" when the row has none.
func (r Row) RelPath() string {
	if r.Path == nil {
		return ""
	}
	return *r.Path
}

// ParseRows parses normalized listing output. Directory classification stats
// each reconstructed path below absRoot and falls back to a trailing "/" on
// the entry name when the stat fails.
func ParseRows(output, absRoot string) []Row {
	rows := Rows(output)
	for i := range rows {
		if rows[i].Path == nil || *rows[i].Path == RootPath {
			continue
		}
		target := filepath.Join(absRoot, filepath.FromSlash(*rows[i].Path))
		if info, err := os.Stat(target); err == nil {
			rows[i].IsDir = info.IsDir()
		}
	}
	return rows
}

// Rows parses listing text into rows without touching the filesystem; IsDir
// only reflects a trailing "/" on the entry name.
func Rows(text string) []Row {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	rows := make([]Row, len(lines))

	// cursor[d] is the path of the most recent entry at depth d
	var cursor []string
	for i, line := range lines {
		rows[i].Line = line
		if i == 0 {
			root := RootPath
			rows[i].Path = &root
			rows[i].IsDir = true
			cursor = []string{RootPath}
			continue
		}

		depth, raw, ok := MatchEntry(line)
		// a row deeper than any open parent has no ancestor to join onto
		// and stays unattributed, like a header or footer line
		if !ok || depth-1 >= len(cursor) {
			continue
		}
		name, dirHint := CleanName(raw)
		if name == "" {
			continue
		}
		path := joinPath(cursor[depth-1], name)
		rows[i].Path = &path
		rows[i].IsDir = dirHint
		cursor = append(cursor[:depth], path)
	}
	return rows
}

// EntryPaths returns the relative path implied by each line of text, nil for
// lines that are not entries.
func EntryPaths(text string) []*string {
	rows := Rows(text)
	if rows == nil {
		return nil
	}
	paths := make([]*string, len(rows))
	for i, row := range rows {
		paths[i] = row.Path
	}
	return paths
}

// MatchEntry matches a line against the box-drawing and ASCII tree grammars
// and returns the entry depth (1 for children of the root) and raw name.
func MatchEntry(line string) (int, string, bool) {
	match := boxEntryPattern.FindStringSubmatch(line)
	if match == nil {
		match = asciiEntryPattern.FindStringSubmatch(line)
	}
	if match == nil {
		return 0, "", false
	}
	return utf8.RuneCountInString(match[1])/4 + 1, match[2], true
}

// CleanName strips annotation comments, symlink targets, wrapping quotes and
// one type indicator from a raw entry name. dirHint reports whether the name
// ended with "/" before the indicator was removed.
func CleanName(raw string) (name string, dirHint bool) {
	name = commentPattern.ReplaceAllString(raw, "")
	if idx := strings.Index(name, " -> "); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if len(name) >= 2 && (name[0] == '"' || name[0] == '\'') && name[len(name)-1] == name[0] {
		name = name[1 : len(name)-1]
	}
	dirHint = strings.HasSuffix(name, "/")
	if name != "" && strings.ContainsRune(typeIndicators, rune(name[len(name)-1])) {
		name = name[:len(name)-1]
	}
	return name, dirHint
}

func joinPath(parent, name string) string {
	if parent == RootPath || parent == "" {
		return name
	}
	return parent + "/" + name
}
