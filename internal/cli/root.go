package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/docsite"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdtree",
		Short: "Keep tree listings in Markdown in sync with the filesystem",
		Long: `mdtree finds fenced blocks whose info string is a tree invocation,
for example ` + "```sh tree src -L 2" + `, runs the listing in the repository
root and compares the output with the block body.

Listings can carry notes from a .tree-annotations.yml file; a {section}
selector after the command picks which notes apply.`,
		SilenceUsage: true,
	}
	addConfigFlags(rootCmd.PersistentFlags())

	// Sync Commands
	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report tree blocks that drifted from the filesystem",
		RunE:  RunCheck,
	}
	checkCmd.Flags().Bool("json", false, "Print machine-readable results")

	fixCmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite drifted tree blocks in place",
		RunE:  RunFix,
	}
	fixCmd.Flags().Bool("json", false, "Print machine-readable results")

	watchCmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-run check whenever files in the repository change",
		RunE:  RunWatch,
	}

	// Inspect Commands
	annotationsCmd := &cobra.Command{
		Use:   "annotations",
		Short: "Show the annotation file that applies here",
		Args:  cobra.NoArgs,
		RunE:  RunAnnotations,
	}
	annotationsCmd.Flags().Bool("json", false, "Print machine-readable sections")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the listing command, configuration and annotations",
		Args:  cobra.NoArgs,
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Render README.md and docs/rules into an HTML site",
		Args:  cobra.NoArgs,
		RunE:  RunDocs,
	}
	docsCmd.Flags().String("out", docsite.DefaultOutDir, "Output directory, relative to the repository root")
	docsCmd.Flags().String("title", docsite.DefaultTitle, "Site title")
	docsCmd.Flags().Bool("json", false, "Print machine-readable build result")

	// Setup Commands
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .mdtree.yaml and .tree-annotations.yml",
		Args:  cobra.NoArgs,
		RunE:  RunInit,
	}

	installHookCmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install a git pre-commit hook that runs mdtree check",
		Args:  cobra.NoArgs,
		RunE:  RunInstallHook,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mdtree %s\n", version)
		},
	}

	rootCmd.AddCommand(
		checkCmd,
		fixCmd,
		watchCmd,
		annotationsCmd,
		doctorCmd,
		docsCmd,
		initCmd,
		installHookCmd,
		versionCmd,
	)

	return rootCmd
}
