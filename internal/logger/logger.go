// Package logger provides a small logging interface so packages are not
// coupled to a specific sink. The TUI owns the terminal, so the real logger
// writes to a file.
package logger

import (
	"fmt"
	"log"
	"os"
)

// DebugEnvVar enables debug logging when set, equivalent to --debug.
const DebugEnvVar = "PROXYSQL_MONITOR_DEBUG"

// Logger defines the logging operations. All methods accept a format string
// and arguments like fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// fileLogger writes to a log file. Debug messages are dropped unless debug
// is enabled.
type fileLogger struct {
	l     *log.Logger
	f     *os.File
	debug bool
}

// NewFileLogger creates a logger appending to path. Debug messages are kept
// when debug is true or DebugEnvVar is set.
func NewFileLogger(path string, debug bool) (Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &fileLogger{
		l:     log.New(f, "", log.LstdFlags),
		f:     f,
		debug: debug || os.Getenv(DebugEnvVar) != "",
	}, nil
}

func (l *fileLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.l.Printf("DEBUG "+format, args...)
	}
}

func (l *fileLogger) Info(format string, args ...interface{}) {
	l.l.Printf("INFO "+format, args...)
}

func (l *fileLogger) Warn(format string, args ...interface{}) {
	l.l.Printf("WARN "+format, args...)
}

func (l *fileLogger) Error(format string, args ...interface{}) {
	l.l.Printf("ERROR "+format, args...)
}

// noopLogger discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards everything.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage is a captured log entry.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures messages for test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a capturing logger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.capture("debug", format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.capture("info", format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.capture("warn", format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.capture("error", format, args) }

func (l *BufferLogger) capture(level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

// HasLevel reports whether any message was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}
