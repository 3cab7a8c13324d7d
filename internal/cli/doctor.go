package cli

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/config"
	"github.com/morozRed/mdtree/internal/fileutil"
)

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

func RunDoctor(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	summary := DoctorSummary{
		Mode:           "doctor",
		WorkingDir:     s.workingDir,
		RepoRoot:       s.repoRoot,
		ConfigFile:     s.cfg.File,
		ListingCommand: s.cfg.ListingCommand,
	}

	if path, err := lookPath(s.cfg.ListingCommand); err == nil {
		summary.ListingPath = path
		summary.ListingAvailable = true
	} else {
		summary.Missing = append(summary.Missing, fmt.Sprintf("listing command %q", s.cfg.ListingCommand))
		summary.Suggestions = append(summary.Suggestions, "install tree or set listing-command in "+config.FileName)
	}
	if summary.ConfigFile == "" {
		summary.Suggestions = append(summary.Suggestions, "run mdtree init")
	}

	annotationFile := s.cfg.AnnotationsPath()
	if annotationFile == "" {
		annotationFile = s.loader.Discover(s.workingDir, s.repoRoot)
	}
	if annotationFile != "" {
		summary.AnnotationFile = annotationFile
		cfg, err := s.loader.Load(annotationFile)
		if err != nil {
			summary.Missing = append(summary.Missing, "valid annotation file")
			summary.Suggestions = append(summary.Suggestions, fmt.Sprintf("fix %s: %v", displayPath(s.workingDir, annotationFile), err))
		} else {
			summary.Sections = len(cfg.Sections)
		}
	}

	if docs, err := s.collectDocuments(nil); err == nil {
		summary.Documents = len(docs)
	} else {
		s.logger.Warn("document discovery failed", "error", err)
	}

	summary.Missing = fileutil.DedupeStrings(summary.Missing)
	sort.Strings(summary.Missing)
	summary.Suggestions = fileutil.DedupeStrings(summary.Suggestions)
	sort.Strings(summary.Suggestions)
	summary.Healthy = len(summary.Missing) == 0

	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	status := "issues"
	if summary.Healthy {
		status = "ok"
	}
	fmt.Printf("doctor: %s\n", status)
	fmt.Printf("repo root: %s\n", summary.RepoRoot)
	if summary.ListingAvailable {
		fmt.Printf("listing: %s (%s)\n", summary.ListingCommand, summary.ListingPath)
	} else {
		fmt.Printf("listing: %s (not found)\n", summary.ListingCommand)
	}
	if summary.ConfigFile != "" {
		fmt.Printf("config: %s\n", summary.ConfigFile)
	} else {
		fmt.Println("config: defaults")
	}
	if summary.AnnotationFile != "" {
		fmt.Printf("annotations: %s (sections=%d)\n", summary.AnnotationFile, summary.Sections)
	} else {
		fmt.Println("annotations: none discovered")
	}
	fmt.Printf("documents: %d\n", summary.Documents)
	if len(summary.Missing) > 0 {
		fmt.Printf("missing (%d): %s\n", len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Printf("next: %s\n", suggestion)
	}
	return nil
}
