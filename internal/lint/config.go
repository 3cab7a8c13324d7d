package lint

import (
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/morozRed/mdtree/internal/annotations"
)

// FrontMatterKey is the front matter field that points a document at its
// annotation file, relative to the document.
const FrontMatterKey = "tree-annotations"

type frontMatter struct {
	TreeAnnotations string `yaml:"tree-annotations" toml:"tree-annotations" json:"tree-annotations"`
}

// configSource records where the annotation config of a document came from.
type configSource string

const (
	sourceNone        configSource = ""
	sourceExplicit    configSource = "explicit"
	sourceFrontMatter configSource = "front-matter"
	sourceDiscovered  configSource = "discovered"
)

// AnnotationPathFromFrontMatter returns the annotation file named in the
// document's front matter, resolved against the document directory.
func AnnotationPathFromFrontMatter(docPath, text string) string {
	if !strings.HasPrefix(text, "---") && !strings.HasPrefix(text, "+++") && !strings.HasPrefix(text, ";;;") {
		return ""
	}
	var meta frontMatter
	if _, err := frontmatter.Parse(strings.NewReader(text), &meta); err != nil {
		return ""
	}
	path := strings.TrimSpace(meta.TreeAnnotations)
	if path == "" {
		return ""
	}
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(docPath), path)
	}
	return path
}

// resolveConfig loads the annotation config for a document: an explicit
// path wins over front matter, which wins over discovery.
func resolveConfig(loader *annotations.Loader, doc Document, opts Options) (*annotations.Config, string, configSource, error) {
	path, source := opts.AnnotationsPath, sourceExplicit
	if path == "" {
		path, source = AnnotationPathFromFrontMatter(doc.Path, doc.Text), sourceFrontMatter
	}
	if path == "" {
		path, source = loader.Discover(filepath.Dir(doc.Path), opts.RepoRoot), sourceDiscovered
	}
	if path == "" {
		return nil, "", sourceNone, nil
	}

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, path, source, err
	}
	return cfg, path, source, nil
}
