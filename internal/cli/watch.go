package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/ignore"
	"github.com/morozRed/mdtree/internal/lint"
)

const watchDebounce = 250 * time.Millisecond

func RunWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return wrapCommandError(err, "failed to start file watcher")
	}
	defer watcher.Close()

	dirs, err := s.watchDirectories()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return wrapCommandError(err, "failed to watch "+dir)
		}
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	fmt.Printf("watching %d directories under %s\n", len(dirs), s.repoRoot)
	check := func() {
		s.loader.Reset()
		summary, err := s.process(ctx, args, lint.ModeCheck, true)
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			}
			return
		}
		_ = PrintRunSummary(summary, false)
	}
	check()

	return watchLoop(ctx, watcher.Events, watcher.Errors, watchDebounce, func(event fsnotify.Event) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := watcher.Add(event.Name); err != nil {
					s.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
		}
	}, check)
}

// watchLoop calls onEvent for every filesystem event and run once per burst
// of events, after debounce has passed without a new one. It returns nil when
// ctx is done.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration, onEvent func(fsnotify.Event), run func()) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if onEvent != nil {
				onEvent(event)
			}
			timer.Reset(debounce)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return wrapCommandError(err, "file watcher failed")
		case <-timer.C:
			run()
		}
	}
}

// watchDirectories lists the repository directories not excluded by the
// ignore rules.
func (s *session) watchDirectories() ([]string, error) {
	rules, err := s.ignoreRules()
	if err != nil {
		return nil, wrapValidationError(err)
	}
	matcher := ignore.NewMatcher(rules)

	var dirs []string
	err = filepath.WalkDir(s.repoRoot, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.repoRoot, path)
		if err != nil {
			return err
		}
		if rel != "." && matcher.ShouldIgnore(rel, true) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list directories under %s: %w", s.repoRoot, err)
	}
	return dirs, nil
}
