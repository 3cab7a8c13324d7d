package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/docsite"
	"github.com/morozRed/mdtree/internal/fileutil"
)

func RunDocs(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	outDir, err := OptionalStringFlag(cmd, "out")
	if err != nil {
		return err
	}
	title, err := OptionalStringFlag(cmd, "title")
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	result, err := docsite.Build(docsite.Options{Root: s.repoRoot, OutDir: outDir, Title: title})
	if err != nil {
		return wrapCommandError(err, "docs build failed")
	}
	s.logger.Debug("docs site built", "out_dir", result.OutDir, "pages", len(result.Pages))

	if asJSON {
		return fileutil.PrintJSON(result)
	}
	fmt.Printf("docs: %d pages written to %s\n", len(result.Pages), displayPath(s.workingDir, result.OutDir))
	return nil
}
