package verdict

import "fmt"

// UnknownBehaviorError means the engine reported a verdict this harness does not know.
type UnknownBehaviorError struct {
	Value string
}

func (e *UnknownBehaviorError) Error() string {
	return fmt.Sprintf("unknown behavior %q", e.Value)
}

// DuplicateCaseError means the engine reported the same case name more than once.
type DuplicateCaseError struct {
	CaseName string
}

func (e *DuplicateCaseError) Error() string {
	return fmt.Sprintf("case %q was reported more than once", e.CaseName)
}

// InvalidDurationError means a case was reported with a negative duration.
type InvalidDurationError struct {
	CaseName   string
	DurationMS int64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("case %q has negative duration %dms", e.CaseName, e.DurationMS)
}

// CaseError attaches the case name to an error found while classifying it.
type CaseError struct {
	CaseName string
	Err      error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.CaseName, e.Err)
}

func (e *CaseError) Unwrap() error { return e.Err }
