package framework

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultStartupGrace   = time.Millisecond * 500
	defaultReadyTimeout   = time.Second * 10
	defaultReadyAttempts  = 10
	minimumConnectTimeout = time.Millisecond * 100
)

// ReadinessPoller waits until the server-under-test accepts TCP connections.
type ReadinessPoller struct {
	// Grace is slept once before the first attempt, to let the launch begin.
	Grace time.Duration
	// Attempts is the maximum number of connection attempts.
	Attempts int
	Logger   Logger
}

func NewReadinessPoller(logger Logger) *ReadinessPoller {
	return &ReadinessPoller{
		Grace:    defaultStartupGrace,
		Attempts: defaultReadyAttempts,
		Logger:   logger,
	}
}

// AwaitReady blocks until a TCP connection to host:port succeeds, the launch outcome
// reports an error, all attempts are used up, or ctx is done.
//
// Attempts are spaced timeout/Attempts apart; a timeout of zero or less means ten
// seconds. A launch error ends polling at the next attempt with ServerLaunchFailedError.
// Running out of attempts gives ServerUnreachableError.
func (p *ReadinessPoller) AwaitReady(
	ctx context.Context,
	host string,
	port int,
	outcome *LaunchOutcome,
	timeout time.Duration,
) error {
	logger := p.Logger
	if logger == nil {
		logger = NullLogger()
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultReadyAttempts
	}
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}
	interval := timeout / time.Duration(attempts)
	connectTimeout := interval
	if connectTimeout < minimumConnectTimeout {
		connectTimeout = minimumConnectTimeout
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	if p.Grace > 0 {
		grace := time.NewTimer(p.Grace)
		select {
		case <-ctx.Done():
			grace.Stop()
			return ctx.Err()
		case <-grace.C:
		}
	}

	dialer := net.Dialer{Timeout: connectTimeout}
	count := 0
	var lastErr error
	operation := func() error {
		if cause := outcome.Err(); cause != nil {
			return backoff.Permanent(&ServerLaunchFailedError{Cause: cause})
		}
		count++
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			logger.Printf("Server at %s not ready (attempt %d of %d): %s", addr, count, attempts, err)
			return err
		}
		_ = conn.Close()
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(attempts-1)),
		ctx,
	)
	err := backoff.Retry(operation, b)
	if err == nil {
		logger.Printf("Server at %s is accepting connections", addr)
		return nil
	}
	var launchFailed *ServerLaunchFailedError
	if errors.As(err, &launchFailed) {
		return launchFailed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &ServerUnreachableError{
		Addr:      addr,
		Attempts:  count,
		LastErr:   lastErr,
		LaunchErr: outcome.Err(),
	}
}
