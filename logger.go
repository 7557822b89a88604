package pranthora

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug logs everything, including per-frame detail.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo logs informational messages and above.
	LogLevelInfo
	// LogLevelWarn logs warnings and above.
	LogLevelWarn
	// LogLevelError logs only errors.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of a LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a string to a LogLevel, defaulting to Info.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "OFF":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// Logger provides structured logging with a configurable minimum level.
type Logger struct {
	level  LogLevel
	prefix string
	base   map[string]any
	logger *log.Logger
}

// NewLogger creates a logger writing to stderr.
func NewLogger(level LogLevel) *Logger {
	return &Logger{
		level:  level,
		prefix: "[pranthora]",
		logger: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// NewLoggerFromEnv creates a logger whose level comes from the
// PRANTHORA_LOG_LEVEL environment variable.
func NewLoggerFromEnv() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("PRANTHORA_LOG_LEVEL")))
}

// SetLevel updates the minimum level.
func (l *Logger) SetLevel(level LogLevel) { l.level = level }

// WithContext returns a logger that includes fields in every message.
// Message-specific fields override context fields on key collision.
func (l *Logger) WithContext(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{level: l.level, prefix: l.prefix, base: merged, logger: l.logger}
}

// Debug logs a debug-level event.
func (l *Logger) Debug(event string, fields map[string]any) { l.log(LogLevelDebug, event, fields) }

// Info logs an info-level event.
func (l *Logger) Info(event string, fields map[string]any) { l.log(LogLevelInfo, event, fields) }

// Warn logs a warning-level event.
func (l *Logger) Warn(event string, fields map[string]any) { l.log(LogLevelWarn, event, fields) }

// Error logs an error-level event.
func (l *Logger) Error(event string, fields map[string]any) { l.log(LogLevelError, event, fields) }

// LoggerFunc adapts the structured logger to the Config.Logger callback form.
func (l *Logger) LoggerFunc() func(string, map[string]any) {
	return func(event string, fields map[string]any) { l.Info(event, fields) }
}

func (l *Logger) log(level LogLevel, event string, fields map[string]any) {
	if level < l.level {
		return
	}

	merged := fields
	if len(l.base) > 0 {
		merged = make(map[string]any, len(l.base)+len(fields))
		for k, v := range l.base {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
	}

	// Stable field order keeps log lines diffable in tests.
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, merged[k])
	}
	l.logger.Printf("%s [%s] %s%s", l.prefix, level.String(), event, b.String())
}
