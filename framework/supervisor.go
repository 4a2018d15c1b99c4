package framework

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTeardownGrace = time.Second * 5

// EntryPoint starts the server-under-test. It is called with the allocated port as its
// only argument and should keep serving until ctx is cancelled. Returning early with nil
// is allowed for servers that listen from their own goroutines.
type EntryPoint func(ctx context.Context, port string) error

// ServerSupervisor starts the server-under-test in the background and tears it down.
type ServerSupervisor struct {
	teardownGrace time.Duration
	logger        Logger
}

// Handle represents one background launch. It must be passed to Teardown exactly once.
type Handle struct {
	Port     int
	outcome  *LaunchOutcome
	cancel   context.CancelFunc
	group    *errgroup.Group
	tornDown sync.Once
}

// Outcome returns the launch outcome the readiness poller should watch.
func (h *Handle) Outcome() *LaunchOutcome {
	return h.outcome
}

func NewServerSupervisor(teardownGrace time.Duration, logger Logger) *ServerSupervisor {
	if teardownGrace <= 0 {
		teardownGrace = defaultTeardownGrace
	}
	if logger == nil {
		logger = NullLogger()
	}
	return &ServerSupervisor{teardownGrace: teardownGrace, logger: logger}
}

// Launch runs entry in a new goroutine and returns immediately. Anything the entry
// point returns or panics with ends up in the handle's LaunchOutcome.
func (s *ServerSupervisor) Launch(ctx context.Context, entry EntryPoint, port int) *Handle {
	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	h := &Handle{
		Port:    port,
		outcome: NewLaunchOutcome(),
		cancel:  cancel,
		group:   group,
	}

	s.logger.Printf("Launching server-under-test on port %d", port)
	group.Go(func() (err error) {
		defer h.outcome.finish()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("server entry point panicked: %+v\n%s", r, string(debug.Stack()))
			}
			if err != nil && runCtx.Err() == nil {
				h.outcome.fail(err)
			}
		}()
		return entry(groupCtx, fmt.Sprint(port))
	})
	return h
}

// Teardown asks the background unit to stop and waits a bounded time for it to do so.
// A unit that ignores cancellation is abandoned. Calling Teardown more than once for the
// same handle has no further effect.
func (s *ServerSupervisor) Teardown(h *Handle) error {
	var err error
	h.tornDown.Do(func() {
		h.cancel()
		select {
		case <-h.outcome.Done():
			if werr := h.group.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
				s.logger.Printf("Server-under-test exited during teardown: %s", werr)
			}
		case <-time.After(s.teardownGrace):
			err = fmt.Errorf("server-under-test on port %d did not stop within %s", h.Port, s.teardownGrace)
			s.logger.Printf("%s", err)
		}
	})
	return err
}

// CommandEntryPoint runs an executable with the port as its only argument. Its standard
// output and error are sent line by line to output.
func CommandEntryPoint(path string, output Logger) EntryPoint {
	if output == nil {
		output = NullLogger()
	}
	return func(ctx context.Context, port string) error {
		//#nosec:G204
		cmd := exec.CommandContext(ctx, path, port)
		stdout := LineWriter(output, "[stdout] ")
		stderr := LineWriter(output, "[stderr] ")
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		defer stdout.Flush()
		defer stderr.Flush()

		output.Printf("Starting %s", CommandLine(cmd.Args...))
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", path, err)
		}
		if err := cmd.Wait(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%s exited: %w", path, err)
		}
		return nil
	}
}
