package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/smartsquash-go/internal/output"
	"github.com/masmgr/smartsquash-go/internal/workflow"
)

// PlanCmd creates the plan command, which prints the squash plan without
// touching the repository.
func PlanCmd() *cli.Command {
	return &cli.Command{
		Name:   "plan",
		Usage:  "Show the squash plan for the current branch",
		Flags:  commonFlags(),
		Action: planAction,
	}
}

func planAction(c *cli.Context) error {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer cmdCtx.Close()

	plan, err := cmdCtx.Runner.Plan(c.Context, cmdCtx.Config.TargetBranch)
	if err != nil {
		return err
	}

	outcome := workflow.OutcomeDryRun
	if !plan.HasFolds {
		outcome = workflow.OutcomeNoFolds
	}
	opts := OutputOptions(c)
	return output.NewPlanReportWriter(opts.Format).Write(&output.PlanReport{
		RepoPath:     cmdCtx.RepoPath,
		Branch:       cmdCtx.Branch,
		TargetBranch: cmdCtx.Config.TargetBranch,
		GeneratedAt:  time.Now(),
		Outcome:      string(outcome),
		Plan:         plan,
	}, opts)
}
