package framework

import (
	"sync"
	"sync/atomic"
)

// LaunchOutcome holds the result of a background server launch. The supervisor is its
// only writer and writes at most once; the readiness poller reads it as often as it
// likes.
type LaunchOutcome struct {
	err      atomic.Pointer[error]
	once     sync.Once
	doneOnce sync.Once
	done     chan struct{}
}

func NewLaunchOutcome() *LaunchOutcome {
	return &LaunchOutcome{done: make(chan struct{})}
}

// Err returns the launch error, or nil if none has been observed yet.
func (o *LaunchOutcome) Err() error {
	if p := o.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Done is closed when the background unit has returned, with or without an error.
func (o *LaunchOutcome) Done() <-chan struct{} {
	return o.done
}

func (o *LaunchOutcome) fail(err error) {
	if err == nil {
		return
	}
	o.once.Do(func() {
		o.err.Store(&err)
	})
}

func (o *LaunchOutcome) finish() {
	o.doneOnce.Do(func() { close(o.done) })
}
