package pranthora

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"DEBUG", LogLevelDebug},
		{"debug", LogLevelDebug},
		{" info ", LogLevelInfo},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"off", LogLevelOff},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelWarn)
	l.logger.SetOutput(&buf)

	l.Debug("debug_event", nil)
	l.Info("info_event", nil)
	l.Warn("warn_event", nil)
	l.Error("error_event", nil)

	out := buf.String()
	if strings.Contains(out, "debug_event") || strings.Contains(out, "info_event") {
		t.Errorf("below-threshold events were logged: %s", out)
	}
	if !strings.Contains(out, "warn_event") || !strings.Contains(out, "error_event") {
		t.Errorf("at-threshold events missing: %s", out)
	}
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelOff)
	l.logger.SetOutput(&buf)

	l.Error("should_not_appear", nil)
	if buf.Len() != 0 {
		t.Errorf("OFF level logged: %s", buf.String())
	}
}

func TestLogger_StableFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelDebug)
	l.logger.SetOutput(&buf)

	l.Info("event", map[string]any{"zebra": 1, "alpha": 2, "mid": 3})
	out := buf.String()
	alpha := strings.Index(out, "alpha=")
	mid := strings.Index(out, "mid=")
	zebra := strings.Index(out, "zebra=")
	if alpha == -1 || mid == -1 || zebra == -1 || !(alpha < mid && mid < zebra) {
		t.Errorf("fields not in sorted order: %s", out)
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelDebug)
	l.logger.SetOutput(&buf)

	scoped := l.WithContext(map[string]any{"session": "abc", "shared": "ctx"})
	scoped.Info("event", map[string]any{"shared": "msg"})

	out := buf.String()
	if !strings.Contains(out, "session=abc") {
		t.Errorf("context field missing: %s", out)
	}
	if !strings.Contains(out, "shared=msg") || strings.Contains(out, "shared=ctx") {
		t.Errorf("message field must override context field: %s", out)
	}
}

func TestLogger_LoggerFunc(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelDebug)
	l.logger.SetOutput(&buf)

	fn := l.LoggerFunc()
	fn("callback_event", map[string]any{"k": "v"})
	if !strings.Contains(buf.String(), "callback_event") {
		t.Errorf("callback form not logged: %s", buf.String())
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv("PRANTHORA_LOG_LEVEL", "error")
	l := NewLoggerFromEnv()
	if l.level != LogLevelError {
		t.Errorf("level = %v, want error", l.level)
	}
}
