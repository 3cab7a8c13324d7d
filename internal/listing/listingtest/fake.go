// Package listingtest provides an in-process stand-in for the tree command
// so tests do not depend on a tree binary being installed.
package listingtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/listing"
)

// Runner renders a directory the way `tree` does with default options. It
// understands -a (include hidden entries), -d (directories only), -L <n>
// (depth limit) and a single root path.
func Runner() listing.Runner {
	return listing.RunnerFunc(func(_ context.Context, dir string, args []string) (string, error) {
		opts, err := parseArgs(args)
		if err != nil {
			return "", err
		}
		root := opts.root
		abs := root
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(dir, root)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", &diag.Error{
				Kind:   diag.KindCommandFailed,
				Detail: fmt.Sprintf("listing command failed: tree %s: %s [error opening dir]", strings.Join(args, " "), root),
				Err:    err,
			}
		}

		var b strings.Builder
		b.WriteString(root + "\n")
		dirs, files := walk(&b, abs, "", 1, opts)
		fmt.Fprintf(&b, "\n%s, %s\n", plural(dirs, "directory", "directories"), plural(files, "file", "files"))
		return b.String(), nil
	})
}

type options struct {
	root     string
	all      bool
	dirsOnly bool
	maxDepth int
}

func parseArgs(args []string) (options, error) {
	opts := options{}
	var positionals []string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-a":
			opts.all = true
		case arg == "-d":
			opts.dirsOnly = true
		case arg == "-L" && i+1 < len(args):
			i++
			if _, err := fmt.Sscanf(args[i], "%d", &opts.maxDepth); err != nil {
				return opts, diag.Errorf(diag.KindCommandFailed, "listing command failed: tree: Invalid level, must be greater than 0.")
			}
		case strings.HasPrefix(arg, "-"):
		default:
			positionals = append(positionals, arg)
		}
	}
	opts.root = "."
	if len(positionals) > 0 {
		opts.root = positionals[0]
	}
	return opts, nil
}

func walk(b *strings.Builder, dir, prefix string, depth int, opts options) (int, int) {
	if opts.maxDepth > 0 && depth > opts.maxDepth {
		return 0, 0
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	var kept []os.DirEntry
	for _, entry := range entries {
		if !opts.all && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if opts.dirsOnly && !entry.IsDir() {
			continue
		}
		kept = append(kept, entry)
	}
	sort.Slice(kept, func(i, j int) bool {
		return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
	})

	dirs, files := 0, 0
	for i, entry := range kept {
		last := i == len(kept)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix + connector + entry.Name() + "\n")
		if entry.IsDir() {
			dirs++
			d, f := walk(b, filepath.Join(dir, entry.Name()), childPrefix, depth+1, opts)
			dirs += d
			files += f
		} else {
			files++
		}
	}
	return dirs, files
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
