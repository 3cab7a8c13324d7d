package cli

import (
	"github.com/spf13/cobra"

	"github.com/morozRed/mdtree/internal/annotations"
	"github.com/morozRed/mdtree/internal/config"
	"github.com/morozRed/mdtree/internal/ignore"
	"github.com/morozRed/mdtree/internal/lint"
	"github.com/morozRed/mdtree/internal/listing"
	"github.com/morozRed/mdtree/internal/logging"
	"github.com/morozRed/mdtree/internal/logging/gologger"
	"github.com/morozRed/mdtree/internal/shellsyntax"
)

// newRunner builds the listing runner for a session. Tests replace it with
// an in-process fake.
var newRunner = func(cfg *config.Config) listing.Runner {
	return listing.ExecRunner{Binary: cfg.ListingCommand}
}

// session holds what every command resolves before doing work.
type session struct {
	workingDir string
	repoRoot   string
	cfg        *config.Config
	provider   logging.Provider
	logger     logging.Logger
	loader     *annotations.Loader
	syntax     *shellsyntax.Checker
	runner     listing.Runner
}

func openSession(cmd *cobra.Command) (*session, error) {
	workingDir, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}
	repoRoot, err := lint.FindRepoRoot(workingDir)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if cmd != nil {
		cfg, err = config.Load(repoRoot, cmd.Flags())
	} else {
		cfg, err = config.Load(repoRoot, nil)
	}
	if err != nil {
		return nil, wrapValidationError(err)
	}

	provider, err := gologger.NewProvider(gologger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, wrapValidationError(err)
	}
	logger := logging.ModuleLogger(provider, logging.CLIModule)
	logger.Debug("session opened", "repo_root", repoRoot, "config_file", cfg.File, "jobs", cfg.Jobs)

	return &session{
		workingDir: workingDir,
		repoRoot:   repoRoot,
		cfg:        cfg,
		provider:   provider,
		logger:     logger,
		loader:     annotations.NewLoader(),
		syntax:     shellsyntax.NewChecker(),
		runner:     newRunner(cfg),
	}, nil
}

// ignoreRules combines .mdtreeignore with the configured extra rules.
func (s *session) ignoreRules() ([]string, error) {
	rules, err := ignore.LoadFile(s.repoRoot)
	if err != nil {
		return nil, err
	}
	return append(rules, s.cfg.Ignore...), nil
}

func (s *session) lintOptions(mode lint.Mode) lint.Options {
	return lint.Options{
		RepoRoot:        s.repoRoot,
		AnnotationsPath: s.cfg.AnnotationsPath(),
		Mode:            mode,
		Runner:          s.runner,
		Loader:          s.loader,
		Syntax:          s.syntax,
		Logger:          logging.ModuleLogger(s.provider, logging.LintModule),
	}
}
