package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/morozRed/mdtree/internal/fileutil"
	"github.com/morozRed/mdtree/internal/lint"
)

func RunCheck(cmd *cobra.Command, args []string) error {
	return runDocuments(cmd, args, lint.ModeCheck)
}

func RunFix(cmd *cobra.Command, args []string) error {
	return runDocuments(cmd, args, lint.ModeFix)
}

func runDocuments(cmd *cobra.Command, args []string, mode lint.Mode) error {
	start := time.Now()
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	summary, err := s.process(commandContext(cmd), args, mode, asJSON)
	if err != nil {
		return err
	}
	summary.DurationMS = time.Since(start).Milliseconds()

	if err := PrintRunSummary(summary, asJSON); err != nil {
		return err
	}
	if summary.Issues > 0 {
		return issuesFoundError(summary.Mode, summary.Issues)
	}
	return nil
}

// process runs the document pass over every target and, in fix mode, writes
// the rewritten documents back.
func (s *session) process(ctx context.Context, targets []string, mode lint.Mode, quiet bool) (RunSummary, error) {
	summary := RunSummary{Mode: mode.String(), RootPath: s.repoRoot}

	docs, err := s.collectDocuments(targets)
	if err != nil {
		return summary, err
	}
	results, err := s.lintDocuments(ctx, docs, mode, quiet)
	if err != nil {
		return summary, err
	}

	for _, result := range results {
		summary.Documents++
		summary.Blocks += result.Blocks
		summary.Issues += result.Report.Count()
		if result.Changed {
			summary.Rewritten++
			summary.RewrittenFiles = append(summary.RewrittenFiles, displayPath(s.workingDir, result.Path))
		}
		for _, issue := range result.Report.Flatten() {
			summary.Findings = append(summary.Findings, IssueLine{
				File:             displayPath(s.workingDir, result.Path),
				CategorizedIssue: issue,
			})
		}
	}
	summary.Results = results
	return summary, nil
}

func (s *session) collectDocuments(targets []string) ([]string, error) {
	if len(targets) == 0 {
		targets = []string{s.workingDir}
	}
	resolved := make([]string, 0, len(targets))
	for _, target := range targets {
		if !filepath.IsAbs(target) {
			target = filepath.Join(s.workingDir, target)
		}
		resolved = append(resolved, target)
	}

	rules, err := s.ignoreRules()
	if err != nil {
		return nil, wrapValidationError(err)
	}
	docs, err := fileutil.CollectDocuments(resolved, rules)
	if err != nil {
		return nil, wrapValidationError(err)
	}
	return docs, nil
}

// lintDocuments checks up to cfg.Jobs documents at a time. Results keep the
// order of docs.
func (s *session) lintDocuments(ctx context.Context, docs []string, mode lint.Mode, quiet bool) ([]*lint.Result, error) {
	results := make([]*lint.Result, len(docs))
	progress := newDocumentProgressReporter(mode.String(), len(docs), quiet)

	var (
		mu   sync.Mutex
		done int
	)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Jobs)
	for i, path := range docs {
		group.Go(func() error {
			result, err := s.lintDocument(ctx, path, mode)
			if err != nil {
				return err
			}
			results[i] = result

			mu.Lock()
			done++
			progress.Update(displayPath(s.workingDir, path), done)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, wrapCommandError(err, "document pass failed")
	}
	progress.Done(len(docs))
	return results, nil
}

func (s *session) lintDocument(ctx context.Context, path string, mode lint.Mode) (*lint.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := lint.Run(ctx, lint.Document{Path: path, Text: string(data)}, s.lintOptions(mode))
	if err != nil {
		return nil, err
	}
	if mode == lint.ModeFix && result.Changed {
		if err := fileutil.WriteAtomic(path, []byte(result.Text)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		s.logger.Info("document rewritten", "path", path)
	}
	return result, nil
}
