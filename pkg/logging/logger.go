package logging

import (
	"io"
	"os"
	"sync"
	"time"

	charm "github.com/charmbracelet/log"
)

// ConsoleLogger implements Logger on top of charmbracelet/log.
type ConsoleLogger struct {
	logger *charm.Logger
}

// NewLogger creates a console logger writing to the given writer.
func NewLogger(w io.Writer, level Level) *ConsoleLogger {
	logger := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: true,
		Level:           toCharmLevel(level),
	})
	return &ConsoleLogger{logger: logger}
}

// NewConsoleLogger creates a logger that writes to stderr.
func NewConsoleLogger(level Level) *ConsoleLogger {
	return NewLogger(os.Stderr, level)
}

func toCharmLevel(level Level) charm.Level {
	switch level {
	case DebugLevel:
		return charm.DebugLevel
	case WarnLevel:
		return charm.WarnLevel
	case ErrorLevel:
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}

func fromCharmLevel(level charm.Level) Level {
	switch level {
	case charm.DebugLevel:
		return DebugLevel
	case charm.WarnLevel:
		return WarnLevel
	case charm.ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func keyvals(fields []Field) []any {
	kv := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}

// Debug logs a debug-level message
func (l *ConsoleLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, keyvals(fields)...)
}

// Info logs an info-level message
func (l *ConsoleLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, keyvals(fields)...)
}

// Warn logs a warning-level message
func (l *ConsoleLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, keyvals(fields)...)
}

// Error logs an error-level message
func (l *ConsoleLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, keyvals(fields)...)
}

// With creates a child logger with the given fields pre-set
func (l *ConsoleLogger) With(fields ...Field) Logger {
	return &ConsoleLogger{logger: l.logger.With(keyvals(fields)...)}
}

// SetLevel sets the minimum log level
func (l *ConsoleLogger) SetLevel(level Level) {
	l.logger.SetLevel(toCharmLevel(level))
}

// GetLevel returns the current log level
func (l *ConsoleLogger) GetLevel() Level {
	return fromCharmLevel(l.logger.GetLevel())
}

// Global default logger
var (
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the global default logger
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultLogger = NewConsoleLogger(level)
	})
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	once.Do(func() {})
	defaultLogger = logger
}

// Helper functions that use the default logger

// Debug logs a debug-level message using the default logger
func Debug(msg string, fields ...Field) {
	DefaultLogger().Debug(msg, fields...)
}

// Info logs an info-level message using the default logger
func Info(msg string, fields ...Field) {
	DefaultLogger().Info(msg, fields...)
}

// Warn logs a warning-level message using the default logger
func Warn(msg string, fields ...Field) {
	DefaultLogger().Warn(msg, fields...)
}

// ErrorLog logs an error-level message using the default logger
// Named ErrorLog to avoid conflict with Error field constructor
func ErrorLog(msg string, fields ...Field) {
	DefaultLogger().Error(msg, fields...)
}

// With creates a child logger with the given fields pre-set using the default logger
func With(fields ...Field) Logger {
	return DefaultLogger().With(fields...)
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation with its duration
func (t *TimedOperation) End() {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, append(t.fields, Latency(elapsed))...)
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, append(t.fields, Latency(elapsed), Error(err))...)
}
