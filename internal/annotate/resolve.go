// Package annotate attaches annotation notes to parsed listing rows and
// renders the annotated block body.
package annotate

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/morozRed/mdtree/internal/annotations"
)

// Selection is the note set chosen for one block.
type Selection struct {
	Notes   map[string]string
	Section string
	// Issue is a non-fatal selector diagnostic, empty when the selector (if
	// any) resolved.
	Issue string
}

// Resolve picks the notes for a block. Without a config there are no notes.
// An unknown selector falls back to the default section.
func Resolve(cfg *annotations.Config, selector string, hasSelector bool) Selection {
	if cfg == nil {
		if hasSelector {
			return Selection{Issue: fmt.Sprintf("selector {%s} was ignored because no annotation config file was discovered", selector)}
		}
		return Selection{}
	}

	if !hasSelector {
		return Selection{Notes: cfg.Default(), Section: annotations.DefaultSection}
	}
	if notes, ok := cfg.Section(selector); ok {
		return Selection{Notes: notes, Section: annotations.CanonicalSection(selector)}
	}

	issue := fmt.Sprintf("selector {%s} did not match any configured section in %s; falling back to default notes", selector, cfg.Path)
	if suggestion := closestSection(selector, cfg.SectionNames()); suggestion != "" {
		issue += fmt.Sprintf(" (did you mean {%s}?)", suggestion)
	}
	return Selection{Notes: cfg.Default(), Section: annotations.DefaultSection, Issue: issue}
}

func closestSection(selector string, names []string) string {
	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if name != annotations.DefaultSection {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(selector, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 3
	for _, name := range candidates {
		if d := fuzzy.LevenshteinDistance(selector, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}
