package output

import "io"

// ScriptPlanWriter writes the plan as the rebase todo list handed to git.
type ScriptPlanWriter struct{}

// Write outputs the raw rebase script.
func (w *ScriptPlanWriter) Write(report *PlanReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	defer closeOutput(file)

	if report.Plan == nil {
		return nil
	}
	_, err = io.WriteString(out, report.Plan.Script())
	return err
}
