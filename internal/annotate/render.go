package annotate

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/morozRed/mdtree/internal/annotations"
	"github.com/morozRed/mdtree/internal/block"
	"github.com/morozRed/mdtree/internal/listing"
)

// gutter is the number of columns between the widest row and a note.
const gutter = 2

var widths = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	return cond
}()

// RenderResult is the expected body of one block.
type RenderResult struct {
	Body          string
	Section       string
	SelectorIssue string
	// UnusedKeys are the selected section's keys that matched no row, sorted.
	UnusedKeys []string
}

// Renderer runs the listing for a block and annotates its output.
type Renderer struct {
	Runner listing.Runner
}

// Render produces the expected body for blk. The listing runs in repoRoot.
// A listing failure or an ambiguous root argument is returned as an error;
// selector problems are reported in the result.
func (r Renderer) Render(ctx context.Context, blk block.Block, repoRoot string, cfg *annotations.Config) (*RenderResult, error) {
	runner := r.Runner
	if runner == nil {
		runner = listing.ExecRunner{}
	}

	selection := Resolve(cfg, blk.Selector, blk.HasSelector)
	output, err := runner.Run(ctx, repoRoot, blk.Args)
	if err != nil {
		return nil, err
	}
	body := listing.Normalize(output)

	result := &RenderResult{
		Body:          body,
		Section:       selection.Section,
		SelectorIssue: selection.Issue,
	}
	if len(selection.Notes) == 0 {
		return result, nil
	}

	rootArg, err := listing.RootArgument(blk.Args)
	if err != nil {
		return nil, err
	}
	absRoot := filepath.FromSlash(rootArg)
	if !filepath.IsAbs(absRoot) {
		absRoot = filepath.Join(repoRoot, absRoot)
	}

	rows := listing.ParseRows(body, absRoot)
	annotated, used := Apply(rows, selection.Notes)
	result.Body = annotated
	result.UnusedKeys = UnusedKeys(selection.Notes, used)
	return result, nil
}

// Apply attaches notes to rows and returns the rendered text together with
// the keys that matched. Rows without a note are emitted unchanged.
func Apply(rows []listing.Row, notes map[string]string) (string, map[string]bool) {
	used := make(map[string]bool)
	lines := make([]string, len(rows))
	matched := make([]string, len(rows))

	width := 0
	for i, row := range rows {
		lines[i] = row.Line
		if w := widths.StringWidth(row.Line); w > width {
			width = w
		}
		if len(notes) == 0 {
			continue
		}
		if key, ok := Lookup(notes, row); ok {
			used[key] = true
			matched[i] = notes[key]
		}
	}
	if len(used) == 0 {
		return strings.Join(lines, "\n"), used
	}

	for i, note := range matched {
		if note == "" {
			continue
		}
		lines[i] = widths.FillRight(lines[i], width+gutter) + "# " + singleLine(note)
	}
	return strings.Join(lines, "\n"), used
}

// Lookup finds the note key for a row. The root only matches ".";
// directories prefer the key with a trailing "/" over the bare path.
func Lookup(notes map[string]string, row listing.Row) (string, bool) {
	if row.Path == nil {
		return "", false
	}
	path := *row.Path
	if path == listing.RootPath {
		_, ok := notes[listing.RootPath]
		return listing.RootPath, ok
	}

	candidates := []string{path}
	if row.IsDir {
		candidates = []string{path + "/", path}
	}
	for _, key := range candidates {
		if _, ok := notes[key]; ok {
			return key, true
		}
	}
	return "", false
}

// UnusedKeys returns the keys of notes missing from used, sorted.
func UnusedKeys(notes map[string]string, used map[string]bool) []string {
	var unused []string
	for key := range notes {
		if !used[key] {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	return unused
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// singleLine replaces line breaks in note with spaces and trims the ends;
// inner whitespace is kept as written.
func singleLine(note string) string {
	return strings.TrimSpace(lineBreaks.Replace(note))
}
