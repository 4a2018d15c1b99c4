package verdict

import (
	"github.com/launchdarkly/autobahn-contract-tests/servicedef"
)

// Classification is the output of Classify. Failing is the subset of Results that
// failed under the policy in effect, in the same order.
type Classification struct {
	Policy  RunPolicy
	Results []CaseResult
	Failing []CaseResult
}

func (c Classification) OK() bool {
	return len(c.Failing) == 0
}

// Classify parses the engine's raw verdicts and applies the policy. Only the primary
// behavior decides pass or fail; the close behavior is kept for reporting.
//
// Any unknown behavior string, duplicate case name or negative duration makes the whole
// classification fail.
func Classify(raw []servicedef.RawCaseResult, policy RunPolicy) (Classification, error) {
	c := Classification{Policy: policy, Results: make([]CaseResult, 0, len(raw))}
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		result, err := newCaseResult(r)
		if err != nil {
			return Classification{}, &CaseError{CaseName: r.CaseName, Err: err}
		}
		if _, dup := seen[result.Name]; dup {
			return Classification{}, &DuplicateCaseError{CaseName: result.Name}
		}
		seen[result.Name] = struct{}{}

		c.Results = append(c.Results, result)
		if !policy.Passing(result.Behavior) {
			c.Failing = append(c.Failing, result)
		}
	}
	return c, nil
}

func newCaseResult(r servicedef.RawCaseResult) (CaseResult, error) {
	behavior, err := ParseBehavior(r.Behavior)
	if err != nil {
		return CaseResult{}, err
	}
	behaviorClose, err := ParseBehavior(r.BehaviorClose)
	if err != nil {
		return CaseResult{}, err
	}
	if r.DurationMS < 0 {
		return CaseResult{}, &InvalidDurationError{CaseName: r.CaseName, DurationMS: r.DurationMS}
	}
	return CaseResult{
		Name:            r.CaseName,
		Behavior:        behavior,
		BehaviorClose:   behaviorClose,
		DurationMS:      r.DurationMS,
		RemoteCloseCode: r.RemoteCloseCode,
		ReportFile:      htmlReportFile(r.ReportFile),
	}, nil
}
