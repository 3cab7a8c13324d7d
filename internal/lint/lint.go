// Package lint runs the tree block pass over one document: it scans for
// blocks, renders each one against the filesystem and either reports drift
// or rewrites the drifted blocks.
package lint

import (
	"context"
	"path/filepath"

	"github.com/morozRed/mdtree/internal/annotate"
	"github.com/morozRed/mdtree/internal/annotations"
	"github.com/morozRed/mdtree/internal/block"
	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/listing"
	"github.com/morozRed/mdtree/internal/logging"
)

// Mode selects between reporting drift and repairing it.
type Mode int

const (
	ModeCheck Mode = iota
	ModeFix
)

func (m Mode) String() string {
	if m == ModeFix {
		return "fix"
	}
	return "check"
}

// Document is a snapshot of one file.
type Document struct {
	Path string
	Text string
}

type Options struct {
	// RepoRoot is the working directory of every listing. When empty it is
	// discovered from the document path.
	RepoRoot string
	// AnnotationsPath forces an annotation file instead of front matter or
	// discovery.
	AnnotationsPath string
	Mode            Mode
	Runner          listing.Runner
	Loader          *annotations.Loader
	Syntax          block.SyntaxChecker
	Logger          logging.Logger
}

type Result struct {
	Path           string      `json:"path"`
	Mode           string      `json:"mode"`
	Blocks         int         `json:"blocks"`
	AnnotationFile string      `json:"annotation_file,omitempty"`
	Report         diag.Report `json:"report"`
	// Text is the document after fixes; it equals the input in check mode.
	Text    string `json:"-"`
	Changed bool   `json:"changed"`
}

type replacement struct {
	blk  block.Block
	body string
}

type sectionUsage struct {
	line   int
	unused map[string]bool
}

const outOfSyncDetail = "tree block is out of sync with the filesystem"

// Run processes doc. Block-scoped failures become parser issues and the
// pass continues; a config that cannot be loaded stops the pass with a
// single issue. The returned error is only non-nil when ctx is done.
func Run(ctx context.Context, doc Document, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	logger = logging.WithDocument(logger, doc.Path)

	if abs, err := filepath.Abs(doc.Path); err == nil {
		doc.Path = abs
	}
	if opts.RepoRoot == "" {
		root, err := FindRepoRoot(filepath.Dir(doc.Path))
		if err != nil {
			return nil, err
		}
		opts.RepoRoot = root
	}
	if opts.Loader == nil {
		opts.Loader = annotations.NewLoader()
	}

	result := &Result{Path: doc.Path, Mode: opts.Mode.String(), Text: doc.Text}
	scan := block.Scanner{Syntax: opts.Syntax}.Scan(doc.Text)
	result.Report.Parser = append(result.Report.Parser, scan.Issues...)
	result.Blocks = len(scan.Blocks)
	if len(scan.Blocks) == 0 {
		return result, nil
	}

	cfg, cfgPath, source, err := resolveConfig(opts.Loader, doc, opts)
	if err != nil {
		logger.Warn("annotation config could not be loaded", "path", cfgPath, "source", string(source), "error", err)
		result.Report.Parser = append(result.Report.Parser, diag.Issue{
			Line:   1,
			Kind:   diag.KindMalformedConfig,
			Detail: err.Error(),
		})
		return result, nil
	}
	result.AnnotationFile = cfgPath
	if cfg != nil {
		logger.Debug("annotation config resolved", "path", cfgPath, "source", string(source))
	}

	renderer := annotate.Renderer{Runner: opts.Runner}
	var (
		replacements []replacement
		sections     = map[string]*sectionUsage{}
		order        []string
	)

	for _, blk := range scan.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rendered, err := renderer.Render(ctx, blk, opts.RepoRoot, cfg)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Debug("tree block failed", "line", blk.StartLine, "error", err)
			result.Report.Parser = append(result.Report.Parser, diag.IssueFromError(blk.StartLine, err))
			continue
		}

		if opts.Mode == ModeFix {
			if rendered.Body != blk.Body {
				replacements = append(replacements, replacement{blk: blk, body: rendered.Body})
			}
			continue
		}

		if rendered.SelectorIssue != "" {
			result.Report.Selector = append(result.Report.Selector, diag.Issue{
				Line:   blk.StartLine,
				Kind:   diag.KindSelectorUnresolved,
				Detail: rendered.SelectorIssue,
			})
		}
		recordUnused(sections, &order, blk.StartLine, rendered)
		if rendered.Body != blk.Body {
			result.Report.Sync = append(result.Report.Sync, syncIssue(blk, rendered.Body))
		}
	}

	if opts.Mode == ModeFix {
		if len(replacements) > 0 {
			result.Text = applyReplacements(doc.Text, replacements)
			result.Changed = result.Text != doc.Text
			logger.Debug("tree blocks rewritten", "count", len(replacements))
		}
		return result, nil
	}

	for _, section := range order {
		usage := sections[section]
		if len(usage.unused) == 0 {
			continue
		}
		keys := make([]string, 0, len(usage.unused))
		for key := range usage.unused {
			keys = append(keys, key)
		}
		result.Report.Unused = append(result.Report.Unused, diag.Issue{
			Line:   usage.line,
			Kind:   diag.KindUnusedAnnotation,
			Detail: unusedDetail(section, cfgPath, keys),
		})
	}
	return result, nil
}
