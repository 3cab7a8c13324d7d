package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/morozRed/mdtree/internal/ignore"
)

// DocumentExtensions are the file extensions collected by ScanDocuments.
var DocumentExtensions = []string{".md", ".markdown"}

func IsDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range DocumentExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ScanDocuments walks rootPath and returns the absolute paths of every
// Markdown document not excluded by the ignore rules, sorted.
func ScanDocuments(rootPath string, ignoreRules []string) ([]string, error) {
	matcher := ignore.NewMatcher(ignoreRules)
	var docs []string

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		if relPath != "." && matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !IsDocument(path) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		docs = append(docs, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rootPath, err)
	}

	sort.Strings(docs)
	return docs, nil
}

// CollectDocuments expands targets into document paths. Files are taken as
// given (whatever their extension); directories are scanned.
func CollectDocuments(targets []string, ignoreRules []string) ([]string, error) {
	var docs []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", target, err)
		}
		if !info.IsDir() {
			abs, err := filepath.Abs(target)
			if err != nil {
				return nil, err
			}
			docs = append(docs, abs)
			continue
		}
		found, err := ScanDocuments(target, ignoreRules)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}
	sort.Strings(docs)
	return DedupeStrings(docs), nil
}
