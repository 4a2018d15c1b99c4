package report

import "strings"

// FailureSummary lists every failing case, one per line, in the form used for the
// run's failure message.
func FailureSummary(r *RunReport) string {
	if len(r.Failures) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nFailed test cases:\n")
	for _, f := range r.Failures {
		sb.WriteString("\t")
		sb.WriteString(f.Case.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
