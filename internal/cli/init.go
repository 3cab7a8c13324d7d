package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/annotations"
	"github.com/morozRed/mdtree/internal/config"
	"github.com/morozRed/mdtree/internal/fileutil"
	"github.com/morozRed/mdtree/internal/lint"
)

const starterAnnotations = `# Notes appended to tree listings. Keys are paths relative to the listed
# root; a trailing "/" only matches directories.
default:
  README.md: Start here
  docs/: Project documentation

# Blocks written as ` + "```sh tree {api}" + ` use this section instead.
api:
  .: API root
`

func RunInit(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return err
	}
	repoRoot, err := lint.FindRepoRoot(rootPath)
	if err != nil {
		return err
	}

	settings, err := config.Default().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render default configuration: %w", err)
	}

	files := []struct {
		path string
		data []byte
	}{
		{path: filepath.Join(repoRoot, config.FileName), data: settings},
		{path: filepath.Join(repoRoot, annotations.FileNames[0]), data: []byte(starterAnnotations)},
	}
	for _, file := range files {
		created, err := fileutil.WriteIfMissing(file.path, file.data, 0644)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Created %s\n", file.path)
		} else {
			fmt.Printf("Kept existing %s\n", file.path)
		}
	}
	return nil
}
