package verdict

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CaseResult is the classified outcome of one fuzzing case. It is created by Classify
// and not modified afterward.
type CaseResult struct {
	Name          string
	Behavior      Behavior
	BehaviorClose Behavior
	DurationMS    int64
	// RemoteCloseCode is undefined when the peer closed without sending a code.
	RemoteCloseCode ldvalue.OptionalInt
	ReportFile      string
}

func (r CaseResult) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// FailureReason describes a failing case relative to the expected behavior.
func (r CaseResult) FailureReason() string {
	return fmt.Sprintf("expected %s but was %s", OK, r.Behavior)
}

func (r CaseResult) String() string {
	closeCode := "none"
	if r.RemoteCloseCode.IsDefined() {
		closeCode = strconv.Itoa(r.RemoteCloseCode.IntValue())
	}
	return fmt.Sprintf("[%s] behavior: %s, behaviorClose: %s, duration: %dms, remoteCloseCode: %s, reportFile: %s",
		r.Name, r.Behavior, r.BehaviorClose, r.DurationMS, closeCode, r.ReportFile)
}

// htmlReportFile points at the HTML rendering of a per-case report, which the engine
// writes next to the JSON one.
func htmlReportFile(path string) string {
	if strings.HasSuffix(path, ".json") {
		return strings.TrimSuffix(path, ".json") + ".html"
	}
	return path
}
