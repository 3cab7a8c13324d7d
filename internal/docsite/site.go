// Package docsite renders the repository README and rule documents into a
// small static HTML site.
package docsite

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	DefaultOutDir = "site"
	DefaultTitle  = "mdtree"
	RulesDir      = "docs/rules"
)

type Options struct {
	Root   string
	OutDir string
	Title  string
}

// Page is one generated HTML file, relative to the output directory.
type Page struct {
	Source string `json:"source"`
	Output string `json:"output"`
}

type Result struct {
	OutDir string `json:"out_dir"`
	Pages  []Page `json:"pages"`
}

type navLink struct {
	Href  string
	Label string
}

type pageData struct {
	Title string
	Nav   []navLink
	Body  template.HTML
	Rules []navLink
}

var shell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    :root { color-scheme: light; }
    body { margin: 0; font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #111827; background: #f8fafc; }
    .layout { max-width: 980px; margin: 0 auto; padding: 32px 20px; }
    nav { display: flex; gap: 12px; flex-wrap: wrap; margin-bottom: 18px; }
    nav a { color: #1d4ed8; text-decoration: none; font-weight: 600; }
    article { background: #ffffff; border: 1px solid #e5e7eb; border-radius: 10px; padding: 22px; }
    pre { background: #0f172a; color: #e2e8f0; overflow-x: auto; padding: 12px; border-radius: 8px; }
    code { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace; }
    th, td { border: 1px solid #d1d5db; padding: 6px 10px; }
  </style>
</head>
<body>
  <div class="layout">
    <header>
      <nav>{{range .Nav}}<a href="{{.Href}}">{{.Label}}</a> {{end}}</nav>
    </header>
    <article>
{{.Body}}
{{- if .Rules}}
<h2>Rules</h2>
<ul>{{range .Rules}}
<li><a href="{{.Href}}">{{.Label}}</a></li>{{end}}
</ul>
{{- end}}
    </article>
  </div>
</body>
</html>
`))

func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// Build regenerates the site from Root/README.md and Root/docs/rules/*.md.
// The output directory is removed first.
func Build(opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = DefaultOutDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	if rel, err := filepath.Rel(outDir, root); err == nil && !strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("refusing to use %s as output directory: it contains the repository", outDir)
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read README.md: %w", err)
	}
	rules, err := listRules(filepath.Join(root, filepath.FromSlash(RulesDir)))
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("failed to clean %s: %w", outDir, err)
	}
	if err := os.MkdirAll(filepath.Join(outDir, "rules"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	engine := newEngine()
	result := &Result{OutDir: outDir}

	ruleLinks := make([]navLink, 0, len(rules))
	for _, name := range rules {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		ruleLinks = append(ruleLinks, navLink{Href: "./rules/" + base + ".html", Label: base})
	}

	body, err := convert(engine, readme)
	if err != nil {
		return nil, fmt.Errorf("failed to render README.md: %w", err)
	}
	index := pageData{
		Title: title,
		Nav:   []navLink{{Href: "./index.html", Label: "Home"}},
		Body:  body,
		Rules: ruleLinks,
	}
	if err := writePage(filepath.Join(outDir, "index.html"), index); err != nil {
		return nil, err
	}
	result.Pages = append(result.Pages, Page{Source: "README.md", Output: "index.html"})

	for _, name := range rules {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		source := filepath.Join(root, filepath.FromSlash(RulesDir), name)
		markdown, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		body, err := convert(engine, markdown)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}
		page := pageData{
			Title: base + " | " + title,
			Nav: []navLink{
				{Href: "../index.html", Label: "Home"},
				{Href: "./" + base + ".html", Label: base},
			},
			Body: body,
		}
		output := filepath.Join("rules", base+".html")
		if err := writePage(filepath.Join(outDir, output), page); err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, Page{Source: RulesDir + "/" + name, Output: filepath.ToSlash(output)})
	}

	return result, nil
}

func listRules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func convert(engine goldmark.Markdown, markdown []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func writePage(path string, data pageData) error {
	var buf bytes.Buffer
	if err := shell.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
