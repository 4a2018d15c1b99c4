package framework

import (
	"errors"
	"fmt"
)

// ErrNoFreePort is returned by PortAllocator.Allocate when every candidate port in the
// range was tried and rejected during the current cycle.
var ErrNoFreePort = errors.New("unable to find a free port")

// ServerLaunchFailedError means the background launch of the server-under-test returned
// an error (or panicked) before any readiness check succeeded.
type ServerLaunchFailedError struct {
	Cause error
}

func (e *ServerLaunchFailedError) Error() string {
	return fmt.Sprintf("unable to start server: %s", e.Cause)
}

func (e *ServerLaunchFailedError) Unwrap() error { return e.Cause }

// ServerUnreachableError means every readiness attempt failed to connect. LaunchErr is
// whatever the launch outcome held when polling gave up, and is usually nil.
type ServerUnreachableError struct {
	Addr      string
	Attempts  int
	LastErr   error
	LaunchErr error
}

func (e *ServerUnreachableError) Error() string {
	msg := fmt.Sprintf("unable to connect to server at %s after %d attempts", e.Addr, e.Attempts)
	if e.LastErr != nil {
		msg += fmt.Sprintf(", result of last attempt was: %s", e.LastErr)
	}
	if e.LaunchErr != nil {
		msg += fmt.Sprintf(" (launch error: %s)", e.LaunchErr)
	}
	return msg
}

func (e *ServerUnreachableError) Unwrap() error { return e.LaunchErr }
