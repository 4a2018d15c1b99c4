package framework

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaitDone(t *testing.T, o *LaunchOutcome) {
	select {
	case <-o.Done():
	case <-time.After(time.Second * 5):
		require.Fail(t, "timed out waiting for background launch to finish")
	}
}

func TestLaunchRecordsEntryPointError(t *testing.T) {
	s := NewServerSupervisor(time.Second, nil)
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		return errors.New("address already in use")
	}, 9999)

	awaitDone(t, h.Outcome())
	assert.EqualError(t, h.Outcome().Err(), "address already in use")
	assert.NoError(t, s.Teardown(h))
}

func TestLaunchPassesPortAsOnlyArgument(t *testing.T) {
	s := NewServerSupervisor(time.Second, nil)
	got := make(chan string, 1)
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		got <- port
		<-ctx.Done()
		return ctx.Err()
	}, 45678)

	select {
	case port := <-got:
		assert.Equal(t, "45678", port)
	case <-time.After(time.Second * 5):
		require.Fail(t, "entry point was not called")
	}
	assert.NoError(t, s.Teardown(h))
	assert.NoError(t, h.Outcome().Err(), "cancellation by teardown is not a launch failure")
}

func TestLaunchRecordsPanic(t *testing.T) {
	s := NewServerSupervisor(time.Second, nil)
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		panic("no main method")
	}, 9999)

	awaitDone(t, h.Outcome())
	require.Error(t, h.Outcome().Err())
	assert.Contains(t, h.Outcome().Err().Error(), "no main method")
}

func TestLaunchDoesNotBlockCaller(t *testing.T) {
	s := NewServerSupervisor(time.Second, nil)
	release := make(chan struct{})
	start := time.Now()
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}, 9999)
	assert.Less(t, time.Since(start), time.Millisecond*500)
	close(release)
	assert.NoError(t, s.Teardown(h))
}

func TestTeardownIsIdempotent(t *testing.T) {
	s := NewServerSupervisor(time.Second, nil)
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		<-ctx.Done()
		return ctx.Err()
	}, 9999)

	assert.NoError(t, s.Teardown(h))
	assert.NoError(t, s.Teardown(h))
	awaitDone(t, h.Outcome())
}

func TestTeardownAbandonsUnitThatIgnoresCancellation(t *testing.T) {
	logger := &CapturingLogger{}
	s := NewServerSupervisor(time.Millisecond*50, logger)
	stuck := make(chan struct{})
	t.Cleanup(func() { close(stuck) })
	h := s.Launch(context.Background(), func(ctx context.Context, port string) error {
		<-stuck
		return nil
	}, 9999)

	err := s.Teardown(h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not stop")
	assert.NotEmpty(t, logger.Output())
}

func TestLaunchOutcomeKeepsFirstError(t *testing.T) {
	o := NewLaunchOutcome()
	assert.NoError(t, o.Err())
	o.fail(nil)
	assert.NoError(t, o.Err())
	o.fail(errors.New("first"))
	o.fail(errors.New("second"))
	assert.EqualError(t, o.Err(), "first")
}

func TestCommandEntryPointReportsMissingExecutable(t *testing.T) {
	entry := CommandEntryPoint("/nonexistent/server-under-test", nil)
	err := entry(context.Background(), "9001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestCommandEntryPointReportsNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	path, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false is not available")
	}
	logger := &CapturingLogger{}
	err = CommandEntryPoint(path, logger)(context.Background(), "9001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited")

	output := logger.Output()
	require.NotEmpty(t, output)
	assert.True(t, strings.HasPrefix(output[0].Message, "Starting "))
	assert.Contains(t, output[0].Message, "9001")
}

func TestCommandEntryPointStopsOnCancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep is not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(time.Millisecond*100, cancel)

	start := time.Now()
	err = CommandEntryPoint(path, nil)(ctx, "30")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second*10)
}
