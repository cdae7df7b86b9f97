package cmd

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/masmgr/smartsquash-go/config"
	"github.com/masmgr/smartsquash-go/internal/changeset"
	"github.com/masmgr/smartsquash-go/internal/git"
	"github.com/masmgr/smartsquash-go/internal/logging"
	"github.com/masmgr/smartsquash-go/internal/output"
	"github.com/masmgr/smartsquash-go/internal/workflow"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Branch   string
	Dry      bool
	Logger   *zap.Logger
	Repo     *git.GitRepository
	Runner   *workflow.Runner
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, builds the logger and opens and validates the
// repository.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Log.Level, !color.NoColor)
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			_ = logger.Sync()
		}
	}()

	filter := git.PathFilter{Include: cfg.Filters.Include, Exclude: cfg.Filters.Exclude}
	repo, err := git.Open(git.OpenOptions{
		Path:         c.String("repo"),
		TargetBranch: cfg.TargetBranch,
		Engine:       parseEngine(cfg.Engine),
		Include:      filter.Include,
		Exclude:      filter.Exclude,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open repository")
	}

	index, err := changeset.NewIndex(repo,
		changeset.WithCacheSize(cfg.Cache.Size),
		changeset.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	runner, err := workflow.NewRunner(repo, index, logger, workflow.WithPathFilter(filter))
	if err != nil {
		return nil, err
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		logger.Debug("current branch unknown", zap.Error(err))
	}

	ok = true
	return &CommandContext{
		Config:   cfg,
		RepoPath: repo.WorkDir(),
		Branch:   branch,
		Dry:      c.Bool("dry"),
		Logger:   logger,
		Repo:     repo,
		Runner:   runner,
	}, nil
}

// Options creates workflow options from the loaded configuration.
func (ctx *CommandContext) Options() workflow.Options {
	return workflow.Options{
		TargetBranch:    ctx.Config.TargetBranch,
		Dry:             ctx.Dry,
		IncludeUnstaged: ctx.Config.Fixup.IncludeUnstaged,
		Order:           parseOrder(ctx.Config.Fixup.Order),
	}
}

// RunFixup folds staged changes and reports the decision.
func (ctx *CommandContext) RunFixup(c context.Context, opts output.OutputOptions) error {
	result, err := ctx.Runner.Fixup(c, ctx.Options())
	if err != nil {
		return err
	}
	if opts.Format == output.FormatConsole && result.Outcome != workflow.OutcomeDryRun {
		return nil
	}
	return output.NewFixupReportWriter(opts.Format).Write(ctx.fixupReport(result), opts)
}

// RunSquash squashes similar commits and reports the plan.
func (ctx *CommandContext) RunSquash(c context.Context, opts output.OutputOptions) error {
	result, err := ctx.Runner.Squash(c, ctx.Options())
	if err != nil {
		return err
	}
	if opts.Format == output.FormatConsole && result.Outcome != workflow.OutcomeDryRun {
		return nil
	}
	return output.NewPlanReportWriter(opts.Format).Write(ctx.planReport(result), opts)
}

func (ctx *CommandContext) fixupReport(result workflow.Result) *output.FixupReport {
	return &output.FixupReport{
		RepoPath:     ctx.RepoPath,
		Branch:       ctx.Branch,
		TargetBranch: ctx.Config.TargetBranch,
		GeneratedAt:  time.Now(),
		Outcome:      string(result.Outcome),
		Staged:       result.Staged,
		Target:       result.TargetCommit,
	}
}

func (ctx *CommandContext) planReport(result workflow.Result) *output.PlanReport {
	return &output.PlanReport{
		RepoPath:     ctx.RepoPath,
		Branch:       ctx.Branch,
		TargetBranch: ctx.Config.TargetBranch,
		GeneratedAt:  time.Now(),
		Outcome:      string(result.Outcome),
		Plan:         result.Plan,
	}
}

// Close flushes the logger.
func (ctx *CommandContext) Close() {
	_ = ctx.Logger.Sync()
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		OutputPath: c.String("output"),
	}
}
