package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/launchdarkly/autobahn-contract-tests/fuzzingclient"
	"github.com/launchdarkly/autobahn-contract-tests/logging"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(params.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %s\n", err)
		return 1
	}
	logger := logging.New(level, params.LogFile, params.LogJSON).With(zap.String("run", uuid.NewString()))
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if params.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.RunTimeout)
		defer cancel()
	}
	ctx = logging.NewContext(ctx, logger)

	cfg, e := params.runConfig(logger)
	runner := fuzzingclient.NewRunner(e, logging.Printf(logger, "harness"))
	runner.RunLogger = &ConsoleRunLogger{Verbose: params.Verbose}

	fmt.Println("Running fuzzingclient test suite")
	if _, err := runner.Run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
