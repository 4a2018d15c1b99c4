package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/launchdarkly/autobahn-contract-tests/echoserver"
	"github.com/launchdarkly/autobahn-contract-tests/engine"
	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/fuzzingclient"
	"github.com/launchdarkly/autobahn-contract-tests/logging"
	"github.com/launchdarkly/autobahn-contract-tests/verdict"
)

const (
	builtinEchoServer = "builtin:echo"
	engineWSTest      = "wstest"
	engineIndex       = "index"
)

type commandParams struct {
	Config kong.ConfigFlag `help:"YAML file with default values for these parameters." placeholder:"FILE"`

	Agent           string        `default:"autobahntestsuite-agent" env:"AUTOBAHN_AGENT" help:"Agent name used in the fuzzing engine's reports."`
	Host            string        `default:"127.0.0.1" env:"AUTOBAHN_HOST" help:"Address the server-under-test listens on."`
	Port            int           `default:"0" env:"AUTOBAHN_PORT" help:"Port of the server-under-test; 0 allocates a free one."`
	Cases           []string      `default:"*" env:"AUTOBAHN_CASES" sep:"," help:"Case patterns to run."`
	ExcludeCases    []string      `env:"AUTOBAHN_EXCLUDE_CASES" sep:"," help:"Case patterns to skip."`
	Server          string        `env:"AUTOBAHN_SERVER" help:"Server-under-test executable, started with the port as its only argument, or 'builtin:echo'."`
	WaitTime        time.Duration `default:"10s" env:"AUTOBAHN_WAIT_TIME" help:"How long to wait for the server to accept connections."`
	FailOnNonStrict bool          `env:"AUTOBAHN_FAIL_ON_NON_STRICT" help:"Treat NON-STRICT behavior as a failure."`
	ProtocolVersion int           `default:"18" env:"AUTOBAHN_PROTOCOL_VERSION" help:"WebSocket protocol version to test."`
	Engine          string        `default:"wstest" enum:"wstest,index" env:"AUTOBAHN_ENGINE" help:"Fuzzing engine: wstest runs the Autobahn test suite, index reads an existing index.json."`
	WSTest          string        `name:"wstest" default:"wstest" env:"AUTOBAHN_WSTEST" help:"wstest executable."`
	IndexFile       string        `env:"AUTOBAHN_INDEX_FILE" help:"index.json to read with --engine=index."`
	ReportDir       string        `default:"target/autobahntestsuite-report" env:"AUTOBAHN_REPORT_DIR" help:"Directory for the engine's reports and the XML report."`
	Report          bool          `default:"true" negatable:"" env:"AUTOBAHN_REPORT" help:"Write the XML report."`
	MetricsFile     string        `env:"AUTOBAHN_METRICS_FILE" help:"Write run metrics in Prometheus text format to this file."`
	RunTimeout      time.Duration `env:"AUTOBAHN_RUN_TIMEOUT" help:"Abort the whole run after this long; 0 means no limit."`
	LogLevel        string        `default:"info" enum:"debug,info,warn,error" env:"AUTOBAHN_LOG_LEVEL" help:"Log level."`
	LogFile         string        `env:"AUTOBAHN_LOG_FILE" help:"Also write logs to this file."`
	LogJSON         bool          `name:"log-json" env:"AUTOBAHN_LOG_JSON" help:"Log in JSON format."`
	Verbose         bool          `short:"v" env:"AUTOBAHN_VERBOSE" help:"Print every case, not just failures."`
}

func (c *commandParams) Read(args []string) bool {
	parser, err := kong.New(c,
		kong.Name("autobahn-contract-tests"),
		kong.Description("Runs the Autobahn fuzzingclient test suite against a WebSocket server."),
		kong.Configuration(yamlConfig),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	if _, err := parser.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	if err := c.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	return true
}

func (c *commandParams) validate() error {
	if c.Engine == engineIndex && c.IndexFile == "" {
		return errors.New("--index-file is required with --engine=index")
	}
	return nil
}

// runConfig turns the parameters into a run configuration and the engine to use.
func (c *commandParams) runConfig(logger *zap.Logger) (fuzzingclient.Config, engine.Engine) {
	cfg := fuzzingclient.Config{
		Agent:        c.Agent,
		Host:         c.Host,
		Port:         c.Port,
		Cases:        c.Cases,
		ExcludeCases: c.ExcludeCases,
		Options:      engine.DefaultOptions(c.ProtocolVersion),
		WaitTime:     c.WaitTime,
		Policy: verdict.RunPolicy{
			FailOnNonStrict: c.FailOnNonStrict,
			EmitReport:      c.Report,
		},
		ReportDir:   c.ReportDir,
		MetricsFile: c.MetricsFile,
	}

	if c.Server != "" {
		cfg.ServerOutput = &framework.CapturingLogger{}
		output := logging.Tee(cfg.ServerOutput, logging.Printf(logger, "server"))
		if c.Server == builtinEchoServer {
			cfg.Server = echoserver.EntryPoint(c.Host, output)
		} else {
			cfg.Server = framework.CommandEntryPoint(c.Server, output)
		}
	}

	var e engine.Engine
	switch c.Engine {
	case engineIndex:
		e = engine.Index{Path: c.IndexFile, Logger: logging.Printf(logger, "index")}
	default:
		e = engine.WSTest{Command: c.WSTest, OutDir: c.ReportDir, Logger: logging.Printf(logger, "wstest")}
	}
	return cfg, e
}

// yamlConfig loads parameter defaults from a YAML document whose keys are flag names,
// written with either dashes or underscores.
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML configuration: %w", err)
	}
	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}
