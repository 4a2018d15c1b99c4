package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/report"
	"github.com/launchdarkly/autobahn-contract-tests/verdict"
)

var (
	passedColor = color.New(color.FgGreen)
	failedColor = color.New(color.FgRed, color.Bold)
	phaseColor  = color.New(color.FgCyan)
)

// ConsoleRunLogger prints run progress to standard output.
type ConsoleRunLogger struct {
	// Verbose prints passing cases as well as failing ones.
	Verbose bool
}

func (c *ConsoleRunLogger) PhaseStarted(phase string) {
	phaseColor.Printf("[%s]\n", phase)
}

func (c *ConsoleRunLogger) PhaseFailed(phase string, err error, debugOutput framework.CapturedOutput) {
	failedColor.Printf("  FAILED: %s\n", phase)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
	if len(debugOutput) > 0 {
		debugOutput.Dump(os.Stdout, "    OUTPUT ")
	}
}

func (c *ConsoleRunLogger) CaseFinished(result verdict.CaseResult, failed bool) {
	if failed {
		failedColor.Printf("  FAILED: ")
		fmt.Println(result)
	} else if c.Verbose {
		passedColor.Printf("  %s: ", result.Behavior)
		fmt.Printf("%s (%dms)\n", result.Name, result.DurationMS)
	}
}

func (c *ConsoleRunLogger) RunFinished(rep *report.RunReport, reportPath string) {
	fmt.Println()
	if reportPath != "" {
		fmt.Printf("Report written to %s\n", reportPath)
	}
	if rep.OK() {
		passedColor.Printf("All test cases passed (%d cases, %s)\n", rep.Tests, rep.TotalDuration())
		return
	}
	failedColor.Printf("%d of %d test cases failed\n", rep.FailureCount, rep.Tests)
}
