package fuzzingclient

import (
	"errors"
	"time"

	"github.com/launchdarkly/autobahn-contract-tests/engine"
	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/verdict"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultAgent     = "autobahntestsuite-agent"
	DefaultHost      = "127.0.0.1"
	DefaultWaitTime  = time.Second * 10
	DefaultReportDir = "target/autobahntestsuite-report"
)

// Config describes one harness run.
type Config struct {
	// Agent is the name the fuzzing engine attributes results to.
	Agent string
	// Host is where the server-under-test listens.
	Host string
	// Port is the server's port. Zero means a free port is allocated, which requires
	// Server to be set.
	Port int
	// Cases and ExcludeCases select the fuzzing cases; no Cases means all of them.
	Cases        []string
	ExcludeCases []string
	// Options is passed to the engine. If undefined, it is {"version": 18}.
	Options ldvalue.Value
	// Server starts the server-under-test. If nil, the harness assumes something is
	// already listening on Host:Port.
	Server framework.EntryPoint
	// ServerOutput, if set, holds whatever the server wrote while starting; it is
	// reported if the server never becomes reachable.
	ServerOutput *framework.CapturingLogger
	// WaitTime bounds how long to wait for the server to accept connections.
	WaitTime    time.Duration
	Policy      verdict.RunPolicy
	ReportDir   string
	MetricsFile string
}

func (c Config) withDefaults() Config {
	if c.Agent == "" {
		c.Agent = DefaultAgent
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if len(c.Cases) == 0 {
		c.Cases = []string{framework.AllCases}
	}
	if c.ExcludeCases == nil {
		c.ExcludeCases = []string{}
	}
	if c.Options.IsNull() {
		c.Options = engine.DefaultOptions(engine.DefaultProtocolVersion)
	}
	if c.WaitTime <= 0 {
		c.WaitTime = DefaultWaitTime
	}
	if c.ReportDir == "" {
		c.ReportDir = DefaultReportDir
	}
	return c
}

func (c Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	if c.Port == 0 && c.Server == nil {
		return errors.New("a port is required when the harness does not start the server")
	}
	return nil
}
