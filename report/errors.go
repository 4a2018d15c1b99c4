package report

import "fmt"

// ReportWriteFailedError means the report could not be serialized or persisted.
type ReportWriteFailedError struct {
	Path  string
	Cause error
}

func (e *ReportWriteFailedError) Error() string {
	return fmt.Sprintf("failed to write report %s: %s", e.Path, e.Cause)
}

func (e *ReportWriteFailedError) Unwrap() error { return e.Cause }
