package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/morozRed/mdtree/internal/annotate"
	"github.com/morozRed/mdtree/internal/block"
	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/drift"
)

func syncIssue(blk block.Block, rendered string) diag.Issue {
	paths := drift.Diff(blk, rendered)
	detail := outOfSyncDetail + " (paths unknown)"
	if len(paths) > 0 {
		detail = outOfSyncDetail + "; out_of_sync_paths=" + strings.Join(paths, ",")
	}
	return diag.Issue{
		Line:           blk.StartLine,
		Kind:           diag.KindOutOfSync,
		Detail:         detail,
		OutOfSyncPaths: paths,
	}
}

// recordUnused narrows the unused keys of the block's section: a key is
// unused in the document only when no block selecting the section used it.
func recordUnused(sections map[string]*sectionUsage, order *[]string, line int, rendered *annotate.RenderResult) {
	if rendered.Section == "" {
		return
	}
	unused := make(map[string]bool, len(rendered.UnusedKeys))
	for _, key := range rendered.UnusedKeys {
		unused[key] = true
	}

	usage, ok := sections[rendered.Section]
	if !ok {
		sections[rendered.Section] = &sectionUsage{line: line, unused: unused}
		*order = append(*order, rendered.Section)
		return
	}
	for key := range usage.unused {
		if !unused[key] {
			delete(usage.unused, key)
		}
	}
}

func unusedDetail(section, path string, keys []string) string {
	sort.Strings(keys)
	return fmt.Sprintf("annotation keys in section %s of %s matched no listed path; unused_annotation_keys=%s",
		section, path, strings.Join(keys, ","))
}
