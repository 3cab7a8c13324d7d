package lint

import (
	"strings"

	"github.com/morozRed/mdtree/internal/block"
)

// applyReplacements rewrites block bodies highest line first so earlier line
// indices stay valid. Line endings and the trailing newline of text are
// preserved, and the fence indent is restored on every non-empty body line.
func applyReplacements(text string, replacements []replacement) string {
	eol := "\n"
	if strings.Contains(text, "\r\n") {
		eol = "\r\n"
	}
	normalized := block.NormalizeNewlines(text)
	trailing := strings.HasSuffix(normalized, "\n")
	lines := block.SplitLines(text)

	for i := len(replacements) - 1; i >= 0; i-- {
		r := replacements[i]
		body := indentBody(r.body, r.blk.Indent)

		updated := make([]string, 0, len(lines)-(r.blk.CloseLine-r.blk.OpenLine-1)+len(body))
		updated = append(updated, lines[:r.blk.OpenLine+1]...)
		updated = append(updated, body...)
		updated = append(updated, lines[r.blk.CloseLine:]...)
		lines = updated
	}

	out := strings.Join(lines, eol)
	if trailing {
		out += eol
	}
	return out
}

func indentBody(body, indent string) []string {
	if body == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return lines
}
