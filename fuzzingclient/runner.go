package fuzzingclient

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/launchdarkly/autobahn-contract-tests/engine"
	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/logging"
	"github.com/launchdarkly/autobahn-contract-tests/report"
	"github.com/launchdarkly/autobahn-contract-tests/verdict"
)

// Runner ties the harness components together. A Runner can be used for several runs;
// its PortAllocator keeps its candidate order across them.
type Runner struct {
	Ports      *framework.PortAllocator
	Supervisor *framework.ServerSupervisor
	Poller     *framework.ReadinessPoller
	Engine     engine.Engine
	RunLogger  RunLogger
}

// NewRunner creates a Runner with default components around the given engine.
func NewRunner(e engine.Engine, debugLogger framework.Logger) *Runner {
	return &Runner{
		Ports:      framework.NewPortAllocator(framework.WithPortLogger(debugLogger)),
		Supervisor: framework.NewServerSupervisor(0, debugLogger),
		Poller:     framework.NewReadinessPoller(debugLogger),
		Engine:     e,
	}
}

// Outcome is what a run produced. It is returned even when the run fails after
// classification, so that callers can still see the results.
type Outcome struct {
	URL        string
	Port       int
	Report     *report.RunReport
	ReportPath string
}

func (o *Outcome) OK() bool {
	return o != nil && o.Report != nil && o.Report.OK()
}

// Run performs one complete run. The steps happen strictly in order: allocate a port,
// launch the server, wait for it, run the engine, classify, report. Whatever was
// launched is torn down before Run returns, on every path.
//
// A failure to write the report comes first in the returned error, followed by a
// CasesFailedError if any case failed, so that neither hides the other.
func (r *Runner) Run(ctx context.Context, cfg Config) (outcome *Outcome, err error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	runLogger := r.RunLogger
	if runLogger == nil {
		runLogger = nullRunLogger{}
	}

	port := cfg.Port
	if port == 0 {
		runLogger.PhaseStarted(PhaseAllocatePort)
		port, err = r.Ports.Allocate(ctx, cfg.Host)
		if err != nil {
			runLogger.PhaseFailed(PhaseAllocatePort, err, nil)
			return nil, err
		}
		logger.Info("allocated port", zap.Int("port", port))
	}

	if cfg.Server != nil {
		runLogger.PhaseStarted(PhaseLaunchServer)
		handle := r.Supervisor.Launch(ctx, cfg.Server, port)
		defer func() {
			if terr := r.Supervisor.Teardown(handle); terr != nil {
				logger.Warn("server teardown incomplete", zap.Error(terr))
				err = combineErrors(err, terr)
			}
		}()

		if err := r.Poller.AwaitReady(ctx, cfg.Host, port, handle.Outcome(), cfg.WaitTime); err != nil {
			var output framework.CapturedOutput
			if cfg.ServerOutput != nil {
				output = cfg.ServerOutput.Output()
			}
			runLogger.PhaseFailed(PhaseLaunchServer, err, output)
			return nil, err
		}
		logger.Info("server-under-test is accepting connections", zap.Int("port", port))
	}

	outcome = &Outcome{
		URL:  fmt.Sprintf("ws://%s", net.JoinHostPort(cfg.Host, strconv.Itoa(port))),
		Port: port,
	}

	runLogger.PhaseStarted(PhaseFuzzing)
	logger.Info("running fuzzing cases",
		zap.String("agent", cfg.Agent),
		zap.String("url", outcome.URL),
		zap.Strings("cases", cfg.Cases),
		zap.Strings("excludeCases", cfg.ExcludeCases),
	)
	raw, err := r.Engine.RunFuzzingClient(ctx, engine.Request{
		Agent:        cfg.Agent,
		URL:          outcome.URL,
		Options:      cfg.Options,
		Cases:        cfg.Cases,
		ExcludeCases: cfg.ExcludeCases,
	})
	if err != nil {
		runLogger.PhaseFailed(PhaseFuzzing, err, nil)
		return nil, err
	}

	runLogger.PhaseStarted(PhaseClassify)
	classification, err := verdict.Classify(raw, cfg.Policy)
	if err != nil {
		runLogger.PhaseFailed(PhaseClassify, err, nil)
		return nil, err
	}
	failing := make(map[string]struct{}, len(classification.Failing))
	for _, f := range classification.Failing {
		failing[f.Name] = struct{}{}
	}
	for _, c := range classification.Results {
		_, failed := failing[c.Name]
		runLogger.CaseFinished(c, failed)
	}

	outcome.Report = report.Assemble(report.SuiteName, classification)

	var writeErr error
	if cfg.Policy.EmitReport {
		runLogger.PhaseStarted(PhaseWriteReport)
		outcome.ReportPath, writeErr = report.WriteJUnit(cfg.ReportDir, outcome.Report)
		if writeErr != nil {
			runLogger.PhaseFailed(PhaseWriteReport, writeErr, nil)
		} else {
			logger.Info("wrote report", zap.String("path", outcome.ReportPath))
		}
	}
	if cfg.MetricsFile != "" {
		if merr := report.WriteMetrics(cfg.MetricsFile, outcome.Report); merr != nil {
			merr = &report.ReportWriteFailedError{Path: cfg.MetricsFile, Cause: merr}
			runLogger.PhaseFailed(PhaseWriteReport, merr, nil)
			writeErr = combineErrors(writeErr, merr)
		}
	}

	runLogger.RunFinished(outcome.Report, outcome.ReportPath)

	var casesErr error
	if !outcome.Report.OK() {
		casesErr = &CasesFailedError{Report: outcome.Report}
		logger.Info("test cases failed",
			zap.Int("failures", outcome.Report.FailureCount),
			zap.Int("tests", outcome.Report.Tests))
	} else {
		logger.Info("all test cases passed", zap.Int("tests", outcome.Report.Tests))
	}
	return outcome, combineErrors(writeErr, casesErr)
}
