// Package logging provides the leveled diagnostics logger used by sessions.
//
// Diagnostics are kept apart from the session transcript: the transcript goes
// to the session's output, log lines go wherever the config points them.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts debug, info, warn or error to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", s)
}

// Logger receives diagnostics.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// writerLogger writes [LEVEL]-prefixed lines to an io.Writer
type writerLogger struct {
	w     io.Writer
	level Level
}

// New returns a logger writing entries at or above level to w.
func New(w io.Writer, level Level) Logger {
	return &writerLogger{w: w, level: level}
}

func (l *writerLogger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	fmt.Fprintf(l.w, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *writerLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *writerLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *writerLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// BufferedLogger captures log output for later retrieval
type BufferedLogger struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferedLogger creates a new buffered logger that keeps every level.
func NewBufferedLogger() *BufferedLogger {
	return &BufferedLogger{
		lines: make([]string, 0),
	}
}

func (l *BufferedLogger) logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, "["+level.String()+"] "+fmt.Sprintf(format, args...))
}

func (l *BufferedLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *BufferedLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *BufferedLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *BufferedLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Lines returns all captured log lines
func (l *BufferedLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]string, len(l.lines))
	copy(result, l.lines)
	return result
}

// String returns all captured output as a single string
func (l *BufferedLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := strings.Join(l.lines, "\n")
	if len(l.lines) > 0 {
		result += "\n"
	}
	return result
}

// nullLogger discards all output
type nullLogger struct{}

func (nullLogger) Debugf(string, ...any) {}
func (nullLogger) Infof(string, ...any)  {}
func (nullLogger) Warnf(string, ...any)  {}
func (nullLogger) Errorf(string, ...any) {}

// NullLogger returns a logger that discards all output
func NullLogger() Logger {
	return nullLogger{}
}

// OpenOutput resolves a logging output setting: "stderr", "stdout" or a
// file path opened for appending. The returned closer is a no-op for the
// standard streams.
func OpenOutput(output string, stdout, stderr io.Writer) (io.Writer, func() error, error) {
	switch output {
	case "", "stderr":
		return stderr, func() error { return nil }, nil
	case "stdout":
		return stdout, func() error { return nil }, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f.Close, nil
}
