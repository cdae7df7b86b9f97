package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/smartsquash-go/internal/squash"
)

const messageWidth = 60

// ConsolePlanWriter writes squash plans to the console.
type ConsolePlanWriter struct{}

// Write outputs the squash plan as a table.
func (w *ConsolePlanWriter) Write(report *PlanReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	defer closeOutput(file)

	color.New(color.FgGreen).Fprintln(out, "Squash Plan")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	writeBranches(out, report.Branch, report.TargetBranch)

	plan := report.Plan
	if plan == nil {
		plan = &squash.Plan{}
	}
	fmt.Fprintf(out, "Commits: %d, folds: %d\n\n", len(plan.Instructions), plan.FoldCount())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tAction\tCommit\tInto\tMessage")
	for i, in := range plan.Instructions {
		into := "-"
		if in.Into != "" {
			into = in.Into[:min(len(in.Into), 7)]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			actionColor(in.Action)(string(in.Action)),
			in.Commit.ShortSHA(),
			into,
			truncateMessage(in.Commit.Message, messageWidth),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !plan.HasFolds {
		fmt.Fprintln(out, "\nNo commits to squash.")
	}
	return nil
}

// ConsoleFixupWriter writes fixup results to the console.
type ConsoleFixupWriter struct{}

// Write outputs the fixup decision.
func (w *ConsoleFixupWriter) Write(report *FixupReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	defer closeOutput(file)

	color.New(color.FgGreen).Fprintln(out, "Fixup")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	writeBranches(out, report.Branch, report.TargetBranch)
	fmt.Fprintf(out, "Staged files: %d\n", len(report.Staged))
	for _, path := range report.Staged {
		fmt.Fprintf(out, "  %s\n", path)
	}

	if len(report.Staged) == 0 {
		fmt.Fprintln(out, "Nothing staged. No files to fixup.")
		return nil
	}
	if report.Target.SHA == "" {
		color.New(color.FgYellow).Fprintln(out, "No commit found to fixup. You'll need to fixup manually.")
		return nil
	}
	fmt.Fprintf(out, "Fixup target: %s %s\n", report.Target.ShortSHA(), truncateMessage(report.Target.Message, messageWidth))
	return nil
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func actionColor(action squash.Action) func(string, ...interface{}) string {
	switch action {
	case squash.ActionFixup:
		return color.YellowString
	default:
		return color.GreenString
	}
}

func writeBranches(out io.Writer, branch, target string) {
	if branch == "" {
		fmt.Fprintf(out, "Target branch: %s\n", target)
		return
	}
	fmt.Fprintf(out, "Branch: %s -> %s\n", branch, target)
}
