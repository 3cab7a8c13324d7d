package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/fileutil"
)

const (
	HookStart = "# >>> mdtree check hook >>>"
	HookEnd   = "# <<< mdtree check hook <<<"
)

func RunInstallHook(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return err
	}

	repoRoot, gitDir, err := ResolveGitPaths(rootPath)
	if err != nil {
		return wrapValidationError(err)
	}

	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")
	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("failed to create hook directory: %w", err)
	}

	existing := ""
	if data, err := os.ReadFile(hookPath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing hook: %w", err)
	}

	updated := UpsertCheckHook(existing, repoRoot)
	if err := os.WriteFile(hookPath, []byte(updated), 0755); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}

	fmt.Printf("Installed pre-commit hook at %s\n", hookPath)
	return nil
}

func ResolveGitPaths(workingDir string) (repoRoot string, gitDir string, err error) {
	repoRootOut, err := exec.Command("git", "-C", workingDir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", "", fmt.Errorf("not inside a git repository")
	}

	gitDirOut, err := exec.Command("git", "-C", workingDir, "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve git directory: %w", err)
	}

	repoRoot = strings.TrimSpace(string(repoRootOut))
	gitDir = strings.TrimSpace(string(gitDirOut))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(repoRoot, gitDir)
	}
	return repoRoot, gitDir, nil
}

// UpsertCheckHook replaces the managed block in existingHook, or appends it
// when there is none.
func UpsertCheckHook(existingHook, repoRoot string) string {
	block := BuildCheckHookBlock(repoRoot)

	if existingHook == "" {
		return "#!/bin/sh\n\n" + block + "\n"
	}

	start := strings.Index(existingHook, HookStart)
	end := strings.Index(existingHook, HookEnd)
	if start >= 0 && end >= start {
		end += len(HookEnd)
		updated := existingHook[:start] + block + existingHook[end:]
		return fileutil.EnsureTrailingNewline(updated)
	}

	base := fileutil.EnsureTrailingNewline(existingHook)
	if !strings.HasPrefix(base, "#!") {
		base = "#!/bin/sh\n" + base
	}
	return base + "\n" + block + "\n"
}

func BuildCheckHookBlock(repoRoot string) string {
	return fmt.Sprintf(
		"%s\nrepo_root=%q\nif command -v mdtree >/dev/null 2>&1; then\n  (cd \"$repo_root\" && mdtree check) || {\n    echo \"mdtree: tree blocks are out of date; run 'mdtree fix'\" >&2\n    exit 1\n  }\nfi\n%s",
		HookStart,
		repoRoot,
		HookEnd,
	)
}
