package report

import (
	"time"

	"github.com/launchdarkly/autobahn-contract-tests/verdict"
)

// SuiteName identifies this harness in generated reports.
const SuiteName = "autobahntestsuite.fuzzingclient"

// RunReport aggregates the classified results of one run. It is built once by Assemble.
type RunReport struct {
	Name            string
	Policy          verdict.RunPolicy
	Cases           []verdict.CaseResult
	Failures        []Failure
	Tests           int
	FailureCount    int
	TotalDurationMS int64
}

// Failure is a failing case together with the reason it failed.
type Failure struct {
	Case   verdict.CaseResult
	Reason string
}

// Assemble builds the report for a classification. The failure count is the size of the
// classification's failing subset; it is never recomputed from the cases.
func Assemble(name string, c verdict.Classification) *RunReport {
	r := &RunReport{
		Name:         name,
		Policy:       c.Policy,
		Cases:        append([]verdict.CaseResult(nil), c.Results...),
		Tests:        len(c.Results),
		FailureCount: len(c.Failing),
	}
	for _, result := range c.Results {
		r.TotalDurationMS += result.DurationMS
	}
	for _, failed := range c.Failing {
		r.Failures = append(r.Failures, Failure{Case: failed, Reason: failed.FailureReason()})
	}
	return r
}

func (r *RunReport) OK() bool {
	return r.FailureCount == 0
}

func (r *RunReport) TotalDuration() time.Duration {
	return time.Duration(r.TotalDurationMS) * time.Millisecond
}

func (r *RunReport) failureFor(name string) (Failure, bool) {
	for _, f := range r.Failures {
		if f.Case.Name == name {
			return f, true
		}
	}
	return Failure{}, false
}
