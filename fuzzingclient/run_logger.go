package fuzzingclient

import (
	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/report"
	"github.com/launchdarkly/autobahn-contract-tests/verdict"
)

const (
	PhaseAllocatePort = "allocate port"
	PhaseLaunchServer = "launch server"
	PhaseFuzzing      = "run fuzzing cases"
	PhaseClassify     = "classify results"
	PhaseWriteReport  = "write report"
)

// RunLogger receives progress notifications during a run.
type RunLogger interface {
	PhaseStarted(phase string)
	PhaseFailed(phase string, err error, debugOutput framework.CapturedOutput)
	CaseFinished(result verdict.CaseResult, failed bool)
	RunFinished(rep *report.RunReport, reportPath string)
}

type nullRunLogger struct{}

func (n nullRunLogger) PhaseStarted(string)                                 {}
func (n nullRunLogger) PhaseFailed(string, error, framework.CapturedOutput) {}
func (n nullRunLogger) CaseFinished(verdict.CaseResult, bool)               {}
func (n nullRunLogger) RunFinished(*report.RunReport, string)               {}
