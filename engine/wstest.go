package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/servicedef"
)

// DefaultWSTestCommand is the Autobahn test suite's command line tool.
const DefaultWSTestCommand = "wstest"

// WSTest is an Engine that runs the Autobahn test suite's wstest tool in fuzzingclient
// mode and reads back the index.json it writes to OutDir.
type WSTest struct {
	// Command is the wstest executable; DefaultWSTestCommand if empty.
	Command string
	// OutDir is where wstest writes its reports.
	OutDir string
	Logger framework.Logger
}

func (e WSTest) RunFuzzingClient(ctx context.Context, req Request) ([]servicedef.RawCaseResult, error) {
	logger := e.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	command := e.Command
	if command == "" {
		command = DefaultWSTestCommand
	}
	outDir, err := filepath.Abs(e.OutDir)
	if err != nil {
		return nil, &EngineError{Engine: "wstest", Err: err}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &EngineError{Engine: "wstest", Err: err}
	}

	specPath := filepath.Join(outDir, fmt.Sprintf("fuzzingclient-%s.json", uuid.NewString()))
	if err := writeSpec(specPath, NewFuzzingClientSpec(req, outDir)); err != nil {
		return nil, &EngineError{Engine: "wstest", Err: err}
	}
	defer os.Remove(specPath) //nolint:errcheck

	//#nosec:G204
	cmd := exec.CommandContext(ctx, command, "-m", servicedef.ModeFuzzingClient, "-s", specPath)
	stdout := framework.LineWriter(logger, "[wstest] ")
	stderr := framework.LineWriter(logger, "[wstest] ")
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	logger.Printf("Running %s", framework.CommandLine(cmd.Args...))
	err = cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		return nil, &EngineError{Engine: "wstest", Err: err}
	}

	results, err := readIndex(filepath.Join(outDir, servicedef.IndexFileName), req.Agent, framework.CaseFilters{})
	if err != nil {
		return nil, &EngineError{Engine: "wstest", Err: err}
	}
	return results, nil
}

// NewFuzzingClientSpec builds the wstest spec for a request. Case selection is left to
// wstest itself.
func NewFuzzingClientSpec(req Request, outDir string) servicedef.FuzzingClientSpec {
	cases := req.Cases
	if len(cases) == 0 {
		cases = []string{framework.AllCases}
	}
	exclude := req.ExcludeCases
	if exclude == nil {
		exclude = []string{}
	}
	return servicedef.FuzzingClientSpec{
		Options: req.Options,
		OutDir:  outDir,
		Servers: []servicedef.FuzzingServer{
			{Agent: req.Agent, URL: req.URL, Options: req.Options},
		},
		Cases:             cases,
		ExcludeCases:      exclude,
		ExcludeAgentCases: map[string][]string{},
	}
}

func writeSpec(path string, spec servicedef.FuzzingClientSpec) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
