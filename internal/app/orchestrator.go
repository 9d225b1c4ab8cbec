package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/quantmind-br/reposnap-go/internal/config"
	"github.com/quantmind-br/reposnap-go/internal/domain"
	"github.com/quantmind-br/reposnap-go/internal/git"
	"github.com/quantmind-br/reposnap-go/internal/output"
	"github.com/quantmind-br/reposnap-go/internal/scanner"
	"github.com/quantmind-br/reposnap-go/internal/utils"
)

// Orchestrator sequences one export run: fetch, scan, serialize, cleanup.
// Configuration is fixed at construction; per-run state lives in runState
// and never leaks between runs.
type Orchestrator struct {
	config  *config.Config
	fetcher git.Fetcher
	logger  *utils.Logger
	dryRun  bool
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Fetcher git.Fetcher
	Logger  *utils.Logger
	Verbose bool
	DryRun  bool
}

// runState is the mutable state of a single run, threaded explicitly
// through the stages.
type runState struct {
	url     string
	name    string
	tmpDir  string
	branch  string
	records domain.ScanResult
	stats   *domain.ScanStats
}

// RunResult summarizes a completed run.
type RunResult struct {
	RepoName      string
	Branch        string
	Files         int
	ReadFailures  int
	WriteFailures int
	Artifacts     []string
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		level := cfg.Logging.Level
		if opts.Verbose {
			level = "debug"
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = git.NewCloneFetcher(git.CloneFetcherOptions{
			Logger:     logger.WithComponent("git"),
			Depth:      cfg.Git.Depth,
			MaxRetries: cfg.Git.MaxRetries,
		})
	}

	return &Orchestrator{
		config:  cfg,
		fetcher: fetcher,
		logger:  logger,
		dryRun:  opts.DryRun,
	}, nil
}

// Run exports the repository at url. Cleanup of the temporary clone
// directory is guaranteed whichever stage fails; its own failure is logged
// and never affects the run's outcome.
func (o *Orchestrator) Run(ctx context.Context, url string) (*RunResult, error) {
	if url == "" {
		return nil, domain.NewFetchError(url, domain.ErrEmptyURL)
	}

	start := time.Now()
	state := &runState{
		url:  url,
		name: utils.RepoNameFromURL(url),
	}

	o.logger.Info().
		Str("url", url).
		Str("name", state.name).
		Str("output", o.config.Output.Directory).
		Msg("Starting repository export")

	tmpDir, err := os.MkdirTemp("", "reposnap-*")
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	state.tmpDir = tmpDir
	defer o.cleanup(state)

	if err := o.fetch(ctx, state); err != nil {
		return nil, err
	}

	if err := o.scan(state); err != nil {
		return nil, err
	}

	result, err := o.serialize(state)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Int("files", result.Files).
		Dur("elapsed", time.Since(start)).
		Msg("Export completed")

	return result, nil
}

func (o *Orchestrator) fetch(ctx context.Context, state *runState) error {
	o.logger.Debug().Str("tmp_dir", state.tmpDir).Msg("Fetching repository")

	cloneCtx := ctx
	if o.config.Git.Timeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, o.config.Git.Timeout)
		defer cancel()
	}

	res, err := o.fetcher.Fetch(cloneCtx, state.url, state.tmpDir)
	if err != nil {
		return err
	}

	state.branch = res.Branch
	o.logger.Info().Str("branch", res.Branch).Int("attempts", res.Attempts).Msg("Repository acquired")
	return nil
}

func (o *Orchestrator) scan(state *runState) error {
	sc := scanner.NewScanner(scanner.ScannerOptions{
		Logger:      o.logger.WithComponent("scanner"),
		MaxFileSize: o.config.Scan.MaxFileSize,
		Progress:    o.config.Scan.Progress && !o.dryRun,
	})

	records, stats, err := sc.Scan(state.tmpDir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	state.records = records
	state.stats = stats
	return nil
}

func (o *Orchestrator) serialize(state *runState) (*RunResult, error) {
	encoders, err := output.Encoders(o.config.Output.Formats)
	if err != nil {
		return nil, err
	}

	writer := output.NewWriter(output.WriterOptions{
		BaseDir:  o.config.Output.Directory,
		Encoders: encoders,
		Logger:   o.logger.WithComponent("output"),
		DryRun:   o.dryRun,
	})

	snap := &domain.Snapshot{
		RepoName:  state.name,
		RepoURL:   state.url,
		Branch:    state.branch,
		ScannedAt: time.Now(),
		Records:   state.records,
	}

	failures := writer.WriteAll(snap)

	artifacts := make([]string, 0, len(encoders))
	for _, enc := range encoders {
		artifacts = append(artifacts, writer.ArtifactPath(snap, enc))
	}

	return &RunResult{
		RepoName:      state.name,
		Branch:        state.branch,
		Files:         len(state.records),
		ReadFailures:  state.stats.ReadFailures,
		WriteFailures: len(failures),
		Artifacts:     artifacts,
	}, nil
}

// cleanup releases the temporary clone directory. Best effort: failures are
// logged and never escalate.
func (o *Orchestrator) cleanup(state *runState) {
	if state.tmpDir == "" {
		return
	}
	if err := os.RemoveAll(state.tmpDir); err != nil {
		o.logger.Warn().Err(err).Str("tmp_dir", state.tmpDir).Msg("Failed to remove temporary directory")
		return
	}
	o.logger.Debug().Str("tmp_dir", state.tmpDir).Msg("Temporary directory removed")
}
