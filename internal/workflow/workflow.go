// Package workflow runs the fixup and squash use cases against a repository.
package workflow

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/masmgr/smartsquash-go/internal/changeset"
	"github.com/masmgr/smartsquash-go/internal/fixup"
	"github.com/masmgr/smartsquash-go/internal/git"
	"github.com/masmgr/smartsquash-go/internal/squash"
)

// Outcome describes how a workflow finished. Only OutcomeApplied rewrites
// history.
type Outcome string

const (
	OutcomeNothingStaged Outcome = "nothing-staged"
	OutcomeNoTarget      Outcome = "no-target"
	OutcomeNoFolds       Outcome = "no-folds"
	OutcomeDryRun        Outcome = "dry-run"
	OutcomeApplied       Outcome = "applied"
)

// Options configures a workflow run.
type Options struct {
	TargetBranch    string
	Dry             bool
	IncludeUnstaged bool
	Order           fixup.Order
}

// Result is the value returned by Fixup and Squash.
type Result struct {
	Outcome Outcome
	Target  string
	// TargetCommit is the fixup target, set when Target is.
	TargetCommit git.Commit
	Staged       []string
	Plan         *squash.Plan
	Script       string
}

// WorkDone reports whether the run rewrote history.
func (r Result) WorkDone() bool {
	return r.Outcome == OutcomeApplied
}

// Runner wires the change-set index, squash planner and fixup resolver to a
// repository.
type Runner struct {
	repo    git.Repository
	index   *changeset.Index
	builder *squash.Builder
	logger  *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	squash []squash.Option
}

// WithPathFilter makes the squash planner compare footprints through f.
func WithPathFilter(f git.PathFilter) RunnerOption {
	return func(o *runnerOptions) {
		o.squash = append(o.squash, squash.WithPathFilter(f))
	}
}

// NewRunner creates a Runner. A nil index gets a private default-sized one.
func NewRunner(repo git.Repository, index *changeset.Index, logger *zap.Logger, opts ...RunnerOption) (*Runner, error) {
	var o runnerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if index == nil {
		var err error
		index, err = changeset.NewIndex(repo, changeset.WithLogger(logger))
		if err != nil {
			return nil, errors.Wrap(err, "create change-set index")
		}
	}
	return &Runner{
		repo:    repo,
		index:   index,
		builder: squash.NewBuilder(repo, logger, o.squash...),
		logger:  logger,
	}, nil
}

// Fixup folds the staged change into the earliest branch commit whose
// footprint covers every staged path, then autosquashes the branch.
func (r *Runner) Fixup(ctx context.Context, opts Options) (Result, error) {
	dirty, err := r.repo.IsDirty(ctx)
	if err != nil {
		return Result{}, errors.Wrap(err, "check worktree")
	}
	if !dirty {
		r.logger.Info("Repository is not dirty. No files to fixup.")
		return Result{Outcome: OutcomeNothingStaged}, nil
	}

	commits, err := r.repo.BranchOnlyCommits(ctx, opts.TargetBranch)
	if err != nil {
		return Result{}, errors.Wrap(err, "list branch commits")
	}
	if opts.Order == fixup.OrderNewestFirst {
		commits = git.Reversed(commits)
	}

	r.logger.Info("Fetching files changed by commits...")
	fp, err := r.index.IndexAll(ctx, commits)
	if err != nil {
		return Result{}, err
	}

	staged, err := r.repo.StagedPaths(ctx, opts.IncludeUnstaged)
	if err != nil {
		return Result{}, errors.Wrap(err, "list staged paths")
	}
	stagedSet := changeset.NewFileSet(staged...)
	if stagedSet.Len() == 0 {
		r.logger.Info("Repository is not dirty. No files to fixup.")
		return Result{Outcome: OutcomeNothingStaged}, nil
	}

	sha, ok := fixup.Resolve(stagedSet, fp)
	if !ok {
		r.logger.Error("No commits found to fixup. You'll need to fixup manually")
		return Result{Outcome: OutcomeNoTarget, Staged: stagedSet.Sorted()}, nil
	}

	result := Result{Target: sha, TargetCommit: findCommit(commits, sha), Staged: stagedSet.Sorted()}
	r.logger.Debug("resolved fixup target",
		zap.String("sha", git.ShortSHA(sha)),
		zap.Int("staged", stagedSet.Len()))

	if opts.Dry {
		commitCmd := "git commit --fixup " + sha
		if opts.IncludeUnstaged {
			commitCmd = "git commit -a --fixup " + sha
		}
		r.logger.Info("Would run: "+commitCmd, zap.Bool("dry", true))
		r.logger.Info(fmt.Sprintf("Would run: git rebase --autosquash -i %s", opts.TargetBranch), zap.Bool("dry", true))
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	if err := r.repo.FixupCommit(ctx, sha, opts.IncludeUnstaged); err != nil {
		return Result{}, err
	}
	if err := r.repo.AutosquashRebase(ctx, opts.TargetBranch); err != nil {
		if errors.Is(err, git.ErrRebaseAborted) {
			r.logger.Error("Rebase failed and aborted. You'll need to squash manually")
		}
		return Result{}, err
	}
	result.Outcome = OutcomeApplied
	return result, nil
}

// Plan computes the squash plan for the branch without touching the
// repository.
func (r *Runner) Plan(ctx context.Context, target string) (*squash.Plan, error) {
	commits, err := r.repo.BranchOnlyCommits(ctx, target)
	if err != nil {
		return nil, errors.Wrap(err, "list branch commits")
	}

	r.logger.Info("Fetching files changed by commits...")
	fp, err := r.index.IndexAll(ctx, commits)
	if err != nil {
		return nil, err
	}
	return r.builder.Build(ctx, commits, fp)
}

// Squash folds commits with identical footprints into their earliest
// counterpart through an interactive rebase driven by the generated script.
func (r *Runner) Squash(ctx context.Context, opts Options) (Result, error) {
	plan, err := r.Plan(ctx, opts.TargetBranch)
	if err != nil {
		return Result{}, err
	}

	result := Result{Plan: plan, Script: plan.Script()}
	if !plan.HasFolds {
		r.logger.Info("No commits to squash")
		result.Outcome = OutcomeNoFolds
		return result, nil
	}

	if opts.Dry {
		r.logger.Info(fmt.Sprintf("Would run: git rebase -i %s", opts.TargetBranch), zap.Bool("dry", true))
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	if err := r.repo.RebaseWithScript(ctx, opts.TargetBranch, result.Script); err != nil {
		if errors.Is(err, git.ErrRebaseAborted) {
			r.logger.Error("Rebase failed and aborted. You'll need to squash manually")
		}
		return Result{}, err
	}
	result.Outcome = OutcomeApplied
	return result, nil
}

func findCommit(commits []git.Commit, sha string) git.Commit {
	for _, c := range commits {
		if c.SHA == sha {
			return c
		}
	}
	return git.Commit{SHA: sha}
}
