// Package drift maps differences between a stored tree block and its freshly
// rendered body back to the filesystem paths they concern.
package drift

import (
	"path"
	"strings"

	"github.com/morozRed/mdtree/internal/block"
	"github.com/morozRed/mdtree/internal/fileutil"
	"github.com/morozRed/mdtree/internal/listing"
)

// Diff compares rendered (expected) against the block body (actual) line by
// line and returns the root-qualified paths implicated by every differing
// line, deduplicated in the order found. An empty result for bodies that differ
// means the drift could not be attributed to a path.
func Diff(blk block.Block, rendered string) []string {
	expected := splitBody(rendered)
	actual := splitBody(blk.Body)
	expectedPaths := listing.EntryPaths(rendered)
	actualPaths := listing.EntryPaths(blk.Body)

	root, err := listing.RootArgument(blk.Args)
	if err != nil {
		root = listing.RootPath
	}

	var out []string
	for i := 0; i < max(len(expected), len(actual)); i++ {
		if i < len(expected) && i < len(actual) && expected[i] == actual[i] {
			continue
		}
		if p := pathAt(expectedPaths, i); p != "" {
			out = append(out, QualifyRoot(root, p))
		}
		if p := pathAt(actualPaths, i); p != "" {
			out = append(out, QualifyRoot(root, p))
		}
	}
	return fileutil.DedupeStrings(out)
}

// QualifyRoot prefixes rel with the listing root. The root is normalized to
// posix separators without a leading "./" or trailing "/".
func QualifyRoot(root, rel string) string {
	root = NormalizeRoot(root)
	switch {
	case root == ".":
		return rel
	case rel == "." || rel == "":
		return root
	default:
		return root + "/" + rel
	}
}

// NormalizeRoot returns root in the form used to qualify paths.
func NormalizeRoot(root string) string {
	root = strings.ReplaceAll(root, "\\", "/")
	for strings.HasPrefix(root, "./") {
		root = strings.TrimPrefix(root, "./")
	}
	root = strings.TrimRight(root, "/")
	if root == "" {
		return "."
	}
	return path.Clean(root)
}

func splitBody(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func pathAt(paths []*string, i int) string {
	if i < len(paths) && paths[i] != nil {
		return *paths[i]
	}
	return ""
}
