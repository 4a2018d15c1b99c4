package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
)

type loggerKey struct{}

func NewContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// New creates the harness logger. Output goes to stderr, and additionally to a rotated
// file if logFileName is set.
func New(level zapcore.LevelEnabler, logFileName string, json bool) *zap.Logger {
	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)}

	if logFileName != "" {
		fileLogger := &lumberjack.Logger{
			Filename: logFileName,
			MaxSize:  100,
			MaxAge:   28,
			Compress: true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileLogger), zap.DebugLevel))
	}

	return zap.New(zapcore.NewTee(cores...))
}

// Printf adapts a zap logger to the framework's Printf-style Logger, logging at debug
// level under the given component name.
func Printf(logger *zap.Logger, component string) framework.Logger {
	return printfLogger{sugar: logger.Named(component).Sugar()}
}

type printfLogger struct {
	sugar *zap.SugaredLogger
}

func (l printfLogger) Printf(message string, args ...interface{}) {
	l.sugar.Debugf(message, args...)
}

// Tee sends each message to every logger.
func Tee(loggers ...framework.Logger) framework.Logger {
	return teeLogger(loggers)
}

type teeLogger []framework.Logger

func (t teeLogger) Printf(message string, args ...interface{}) {
	for _, l := range t {
		if l != nil {
			l.Printf(message, args...)
		}
	}
}
