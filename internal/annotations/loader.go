package annotations

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const loaderCacheSize = 256

type discovery struct {
	path  string
	found bool
}

type loaded struct {
	modTime int64
	size    int64
	config  *Config
}

// Loader discovers and parses annotation files, caching both steps so that
// many documents in one run share the work. It is safe for concurrent use.
type Loader struct {
	mu     sync.Mutex
	dirs   *lru.Cache[string, discovery]
	parsed *lru.Cache[string, loaded]
}

// NewLoader creates a loader with bounded caches.
func NewLoader() *Loader {
	dirs, err := lru.New[string, discovery](loaderCacheSize)
	if err != nil {
		panic(err)
	}
	parsed, err := lru.New[string, loaded](loaderCacheSize)
	if err != nil {
		panic(err)
	}
	return &Loader{dirs: dirs, parsed: parsed}
}

// Discover walks upward from startDir looking for one of FileNames. The walk
// stops after stopDir when startDir is inside it, otherwise at the filesystem
// root. It returns "" when nothing is found.
func (l *Loader) Discover(startDir, stopDir string) string {
	startDir = filepath.Clean(startDir)
	stopDir = filepath.Clean(stopDir)
	bounded := isWithin(startDir, stopDir)

	var visited []string
	result := discovery{}
	for dir := startDir; ; {
		if cached, ok := l.dirs.Get(dir); ok {
			result = cached
			break
		}
		visited = append(visited, dir)
		if path, ok := findIn(dir); ok {
			result = discovery{path: path, found: true}
			break
		}
		parent := filepath.Dir(dir)
		if (bounded && dir == stopDir) || parent == dir {
			break
		}
		dir = parent
	}

	for _, dir := range visited {
		l.dirs.Add(dir, result)
	}
	return result.path
}

// Load parses the annotation file at path, reusing a cached parse while the
// file's size and modification time are unchanged.
func (l *Loader) Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}
	if cached, ok := l.parsed.Get(path); ok && cached.modTime == info.ModTime().UnixNano() && cached.size == info.Size() {
		return cached.config, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}
	cfg, err := Parse(path, string(data))
	if err != nil {
		return nil, err
	}
	l.parsed.Add(path, loaded{modTime: info.ModTime().UnixNano(), size: info.Size(), config: cfg})
	return cfg, nil
}

// Reset drops every cached discovery and parse.
func (l *Loader) Reset() {
	l.dirs.Purge()
	l.parsed.Purge()
}

func findIn(dir string) (string, bool) {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
