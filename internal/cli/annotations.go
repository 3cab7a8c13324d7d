package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/fileutil"
)

// RunAnnotations prints the annotation file that applies to the working
// directory, section by section.
func RunAnnotations(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	summary := AnnotationsSummary{Mode: "annotations", Source: "none"}
	path := s.cfg.AnnotationsPath()
	switch {
	case path != "":
		summary.Source = "explicit"
	default:
		path = s.loader.Discover(s.workingDir, s.repoRoot)
		if path != "" {
			summary.Source = "discovered"
		}
	}

	if path != "" {
		cfg, err := s.loader.Load(path)
		if err != nil {
			return wrapValidationError(err)
		}
		summary.File = path
		summary.Sections = cfg.Sections
	}

	if asJSON {
		return fileutil.PrintJSON(summary)
	}
	if summary.File == "" {
		fmt.Println("annotations: no annotation file discovered")
		return nil
	}

	fmt.Printf("annotations: %s (%s)\n", displayPath(s.workingDir, summary.File), summary.Source)
	for _, section := range fileutil.MapKeysSorted(summary.Sections) {
		notes := summary.Sections[section]
		fmt.Printf("%s (%d)\n", section, len(notes))
		for _, key := range fileutil.MapKeysSorted(notes) {
			fmt.Printf("  %s: %s\n", filepath.ToSlash(key), notes[key])
		}
	}
	return nil
}
