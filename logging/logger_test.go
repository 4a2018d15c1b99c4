package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	assert.Same(t, logger, FromContext(NewContext(context.Background(), logger)))
}

func TestPrintf(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Printf(zap.New(core), "server").Printf("listening on %d", 9001)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "listening on 9001", entries[0].Message)
	assert.Equal(t, "server", entries[0].LoggerName)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestTee(t *testing.T) {
	a, b := &framework.CapturingLogger{}, &framework.CapturingLogger{}
	Tee(a, nil, b).Printf("hello %s", "there")
	require.Len(t, a.Output(), 1)
	require.Len(t, b.Output(), 1)
	assert.Equal(t, "hello there", a.Output()[0].Message)
}

func TestNewWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.log")
	logger := New(zapcore.ErrorLevel, path, true)
	logger.Debug("only in the file", zap.Int("port", 9001))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"only in the file"`)
	assert.Contains(t, string(data), `"port":9001`)
}
