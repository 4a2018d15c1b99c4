package engine

import (
	"context"
	"fmt"

	"github.com/launchdarkly/autobahn-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultProtocolVersion is the WebSocket protocol version the engine is asked to test.
const DefaultProtocolVersion = 18

// Request describes one fuzzing run against a server.
type Request struct {
	// Agent is the name the engine's reports attribute the run to.
	Agent string
	// URL is the server's address in ws://host:port form.
	URL string
	// Options is passed through to the engine; it holds at least a "version" field.
	Options ldvalue.Value
	// Cases are the case name patterns to run; "*" selects all of them.
	Cases []string
	// ExcludeCases are case name patterns to skip.
	ExcludeCases []string
}

// Engine runs the protocol fuzzing cases and returns the verdict for each case, in a
// stable order.
type Engine interface {
	RunFuzzingClient(ctx context.Context, req Request) ([]servicedef.RawCaseResult, error)
}

// Func adapts an ordinary function to the Engine interface.
type Func func(ctx context.Context, req Request) ([]servicedef.RawCaseResult, error)

func (f Func) RunFuzzingClient(ctx context.Context, req Request) ([]servicedef.RawCaseResult, error) {
	return f(ctx, req)
}

// DefaultOptions returns the options bag for the given protocol version.
func DefaultOptions(version int) ldvalue.Value {
	return ldvalue.ObjectBuild().Set("version", ldvalue.Int(version)).Build()
}

// EngineError wraps a failure of the engine itself, as opposed to a failing case.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s engine failed: %s", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
