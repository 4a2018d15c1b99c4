package fuzzingclient

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/launchdarkly/autobahn-contract-tests/report"
)

// CasesFailedError means the run completed but some cases failed under the policy.
type CasesFailedError struct {
	Report *report.RunReport
}

func (e *CasesFailedError) Error() string {
	return fmt.Sprintf("%d of %d test cases failed%s",
		e.Report.FailureCount, e.Report.Tests, strings.TrimRight(report.FailureSummary(e.Report), "\n"))
}

// combineErrors keeps the order of errs, which callers use to put the most important
// error first.
func combineErrors(errs ...error) error {
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	result.ErrorFormat = func(es []error) string {
		lines := make([]string, 0, len(es))
		for _, e := range es {
			lines = append(lines, e.Error())
		}
		return strings.Join(lines, "\n")
	}
	return result
}
