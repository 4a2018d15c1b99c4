// Package echoserver is a minimal WebSocket echo server. It can be used as the
// server-under-test to check the harness itself, and it is the kind of server the
// fuzzing engine expects: every message is sent back unchanged.
package echoserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
)

const shutdownTimeout = time.Second * 5

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Serve accepts WebSocket connections on ln until ctx is cancelled.
func Serve(ctx context.Context, ln net.Listener, logger framework.Logger) error {
	if logger == nil {
		logger = framework.NullLogger()
	}
	server := &http.Server{
		Handler:           Handler(logger),
		ReadHeaderTimeout: time.Second * 10,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// EntryPoint starts the echo server on host at the port it is given.
func EntryPoint(host string, logger framework.Logger) framework.EntryPoint {
	return func(ctx context.Context, port string) error {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, port))
		if err != nil {
			return err
		}
		return Serve(ctx, ln, logger)
	}
}

// Handler upgrades every request to a WebSocket connection and echoes its messages.
func Handler(logger framework.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("Upgrade failed for %s: %s", r.RemoteAddr, err)
			return
		}
		defer conn.Close()
		echo(conn, logger)
	})
}

func echo(conn *websocket.Conn, logger framework.Logger) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Printf("Connection from %s ended: %s", conn.RemoteAddr(), err)
			}
			return
		}
		if err := conn.WriteMessage(messageType, data); err != nil {
			logger.Printf("Write to %s failed: %s", conn.RemoteAddr(), err)
			return
		}
	}
}
