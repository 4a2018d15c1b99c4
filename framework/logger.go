package framework

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages so they can be dumped later, for instance when
// the server-under-test fails to start.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// LineWriter returns an io.Writer that sends each complete line written to it to the
// logger, with the given prefix. Call Flush on the result to emit a trailing partial line.
func LineWriter(logger Logger, prefix string) *LogLineWriter {
	if logger == nil {
		logger = NullLogger()
	}
	return &LogLineWriter{logger: logger, prefix: prefix}
}

type LogLineWriter struct {
	logger  Logger
	prefix  string
	pending []byte
	lock    sync.Mutex
}

func (w *LogLineWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimRight(w.pending[:i], "\r")
		w.logger.Printf("%s%s", w.prefix, string(line))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

func (w *LogLineWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if len(w.pending) > 0 {
		w.logger.Printf("%s%s", w.prefix, string(w.pending))
		w.pending = nil
	}
}
