package output

import (
	"time"

	"github.com/masmgr/smartsquash-go/internal/git"
	"github.com/masmgr/smartsquash-go/internal/squash"
)

// Compile-time interface conformance checks.
var (
	_ PlanReportWriter = (*ConsolePlanWriter)(nil)
	_ PlanReportWriter = (*JSONPlanWriter)(nil)
	_ PlanReportWriter = (*ScriptPlanWriter)(nil)

	_ FixupReportWriter = (*ConsoleFixupWriter)(nil)
	_ FixupReportWriter = (*JSONFixupWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	// FormatScript prints the raw rebase todo list.
	FormatScript OutputFormat = "script"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// PlanReport holds a computed squash plan.
type PlanReport struct {
	RepoPath     string
	Branch       string // checked out branch, empty when unknown
	TargetBranch string
	GeneratedAt  time.Time
	Outcome      string
	Plan         *squash.Plan
}

// FixupReport holds the result of fixup target resolution.
type FixupReport struct {
	RepoPath     string
	Branch       string
	TargetBranch string
	GeneratedAt  time.Time
	Outcome      string
	Staged       []string
	// Target is the zero Commit when no target was found.
	Target git.Commit
}

// PlanReportWriter writes squash plan reports.
type PlanReportWriter interface {
	Write(report *PlanReport, options OutputOptions) error
}

// FixupReportWriter writes fixup reports.
type FixupReportWriter interface {
	Write(report *FixupReport, options OutputOptions) error
}

// NewPlanReportWriter creates a plan writer for the specified format.
func NewPlanReportWriter(format OutputFormat) PlanReportWriter {
	switch format {
	case FormatJSON:
		return &JSONPlanWriter{}
	case FormatScript:
		return &ScriptPlanWriter{}
	default:
		return &ConsolePlanWriter{}
	}
}

// NewFixupReportWriter creates a fixup writer for the specified format.
// There is no script rendering of a fixup; it falls back to console.
func NewFixupReportWriter(format OutputFormat) FixupReportWriter {
	switch format {
	case FormatJSON:
		return &JSONFixupWriter{}
	default:
		return &ConsoleFixupWriter{}
	}
}
