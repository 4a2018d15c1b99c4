package echoserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
)

func startServer(t *testing.T) (string, context.CancelFunc, <-chan error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, &framework.CapturingLogger{})
	}()
	t.Cleanup(cancel)
	return "ws://" + ln.Addr().String(), cancel, done
}

func TestEchoesTextAndBinaryMessages(t *testing.T) {
	url, _, _ := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	for _, m := range []struct {
		messageType int
		data        []byte
	}{
		{websocket.TextMessage, []byte("hello")},
		{websocket.BinaryMessage, []byte{0, 1, 2, 254, 255}},
		{websocket.TextMessage, []byte("")},
	} {
		require.NoError(t, conn.WriteMessage(m.messageType, m.data))
		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, m.messageType, messageType)
		assert.Equal(t, m.data, data)
	}

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestServeStopsWhenContextIsCancelled(t *testing.T) {
	url, cancel, done := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.Close()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second * 5):
		require.Fail(t, "server did not stop")
	}

	_, _, err = websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err)
}

func TestEntryPointReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	err = EntryPoint("127.0.0.1", nil)(context.Background(), port)
	assert.Error(t, err)
}
