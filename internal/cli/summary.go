package cli

import (
	"fmt"
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
	"github.com/morozRed/mdtree/internal/fileutil"
	"github.com/morozRed/mdtree/internal/lint"
)

type RunSummary struct {
	Mode           string         `json:"mode"`
	RootPath       string         `json:"root_path"`
	Documents      int            `json:"documents"`
	Blocks         int            `json:"blocks"`
	Issues         int            `json:"issues"`
	Rewritten      int            `json:"rewritten"`
	DurationMS     int64          `json:"duration_ms"`
	RewrittenFiles []string       `json:"rewritten_files,omitempty"`
	Findings       []IssueLine    `json:"findings,omitempty"`
	Results        []*lint.Result `json:"-"`
}

// IssueLine is one issue located in a document.
type IssueLine struct {
	File string `json:"file"`
	diag.CategorizedIssue
}

// String renders the issue as file:line: category: detail.
func (l IssueLine) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", l.File, l.Line, l.Category, l.Detail)
}

type DoctorSummary struct {
	Mode             string   `json:"mode"`
	WorkingDir       string   `json:"working_dir"`
	RepoRoot         string   `json:"repo_root"`
	ConfigFile       string   `json:"config_file,omitempty"`
	ListingCommand   string   `json:"listing_command"`
	ListingPath      string   `json:"listing_path,omitempty"`
	ListingAvailable bool     `json:"listing_available"`
	AnnotationFile   string   `json:"annotation_file,omitempty"`
	Sections         int      `json:"sections"`
	Documents        int      `json:"documents"`
	Healthy          bool     `json:"healthy"`
	Missing          []string `json:"missing,omitempty"`
	Suggestions      []string `json:"suggestions,omitempty"`
}

type AnnotationsSummary struct {
	Mode     string                       `json:"mode"`
	File     string                       `json:"file,omitempty"`
	Source   string                       `json:"source"`
	Sections map[string]map[string]string `json:"sections,omitempty"`
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	for _, line := range summary.Findings {
		fmt.Println(line.String())
	}
	fmt.Printf(
		"%s: documents=%d blocks=%d issues=%d rewritten=%d duration=%dms\n",
		summary.Mode,
		summary.Documents,
		summary.Blocks,
		summary.Issues,
		summary.Rewritten,
		summary.DurationMS,
	)
	if len(summary.RewrittenFiles) > 0 {
		fmt.Printf("rewritten files (%d): %s\n", len(summary.RewrittenFiles), SummarizePaths(summary.RewrittenFiles, 8))
	}
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
