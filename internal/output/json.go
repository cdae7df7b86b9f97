package output

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSONPlanWriter writes squash plans as JSON.
type JSONPlanWriter struct{}

// JSONPlanReport is the JSON output structure for a squash plan.
type JSONPlanReport struct {
	RepoPath     string            `json:"repo"`
	Branch       string            `json:"branch,omitempty"`
	TargetBranch string            `json:"targetBranch"`
	GeneratedAt  string            `json:"generatedAt"`
	Outcome      string            `json:"outcome,omitempty"`
	HasFolds     bool              `json:"hasFolds"`
	Folds        int               `json:"folds"`
	Instructions []JSONInstruction `json:"instructions"`
	Script       string            `json:"script"`
}

// JSONInstruction is the JSON output structure for one plan line.
type JSONInstruction struct {
	Action  string `json:"action"`
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Into    string `json:"into,omitempty"`
}

// Write outputs the squash plan as JSON.
func (w *JSONPlanWriter) Write(report *PlanReport, options OutputOptions) error {
	data := JSONPlanReport{
		RepoPath:     report.RepoPath,
		Branch:       report.Branch,
		TargetBranch: report.TargetBranch,
		GeneratedAt:  formatGeneratedAt(report.GeneratedAt),
		Outcome:      report.Outcome,
		Instructions: []JSONInstruction{},
	}
	if report.Plan != nil {
		data.HasFolds = report.Plan.HasFolds
		data.Folds = report.Plan.FoldCount()
		data.Script = report.Plan.Script()
		for _, in := range report.Plan.Instructions {
			data.Instructions = append(data.Instructions, JSONInstruction{
				Action:  string(in.Action),
				SHA:     in.Commit.SHA,
				Message: in.Commit.Message,
				Into:    in.Into,
			})
		}
	}
	return writeJSON(data, options.OutputPath)
}

// JSONFixupWriter writes fixup results as JSON.
type JSONFixupWriter struct{}

// JSONFixupReport is the JSON output structure for a fixup result.
type JSONFixupReport struct {
	RepoPath     string   `json:"repo"`
	Branch       string   `json:"branch,omitempty"`
	TargetBranch string   `json:"targetBranch"`
	GeneratedAt  string   `json:"generatedAt"`
	Outcome      string   `json:"outcome,omitempty"`
	Staged       []string `json:"staged"`
	Found        bool     `json:"found"`
	SHA          string   `json:"sha,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// Write outputs the fixup result as JSON.
func (w *JSONFixupWriter) Write(report *FixupReport, options OutputOptions) error {
	staged := report.Staged
	if staged == nil {
		staged = []string{}
	}
	return writeJSON(JSONFixupReport{
		RepoPath:     report.RepoPath,
		Branch:       report.Branch,
		TargetBranch: report.TargetBranch,
		GeneratedAt:  formatGeneratedAt(report.GeneratedAt),
		Outcome:      report.Outcome,
		Staged:       staged,
		Found:        report.Target.SHA != "",
		SHA:          report.Target.SHA,
		Message:      report.Target.Message,
	}, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	defer closeOutput(file)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}
