package lint

import (
	"fmt"
	"os"
	"path/filepath"
)

// VCSMarker is the entry whose presence marks a repository root.
const VCSMarker = ".git"

// FindRepoRoot returns the closest ancestor of start (inclusive) containing
// VCSMarker. When there is none it falls back to the working directory.
func FindRepoRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	for dir := abs; ; {
		if _, err := os.Stat(filepath.Join(dir, VCSMarker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return cwd, nil
}
