package pranthora

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError_SentinelMatching(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, ErrAuthentication},
		{403, ErrPermission},
		{404, ErrNotFound},
		{429, ErrRateLimited},
	}
	sentinels := []error{ErrAuthentication, ErrPermission, ErrNotFound, ErrRateLimited}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status, Message: "m"}
		for _, s := range sentinels {
			got := errors.Is(err, s)
			if (s == tt.want) != got {
				t.Errorf("status %d: errors.Is(%v) = %v", tt.status, s, got)
			}
		}
	}

	serverErr := &APIError{StatusCode: 500}
	for _, s := range sentinels {
		if errors.Is(serverErr, s) {
			t.Errorf("status 500 must not match %v", s)
		}
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("APIKey", "", "cannot be empty")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("ConfigError must match ErrInvalidConfig")
	}
	if !strings.Contains(err.Error(), "APIKey") {
		t.Errorf("message should name the field: %s", err.Error())
	}

	withValue := NewConfigError("BaseURL", "ftp://x", "must be an http or https URL")
	if !strings.Contains(withValue.Error(), "ftp://x") {
		t.Errorf("message should include the value: %s", withValue.Error())
	}
}

func TestConnectionError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := NewConnectionError("wss://example.com", "dial", cause)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Error("ConnectionError must match ErrConnectionFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("ConnectionError must unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "dial") || !strings.Contains(msg, "wss://example.com") {
		t.Errorf("message should name operation and URL: %s", msg)
	}
}

func TestSendError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	err := NewSendError("binary", cause)
	if !errors.Is(err, cause) {
		t.Error("SendError must unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "binary") {
		t.Errorf("message should name the frame kind: %s", err.Error())
	}
}

func TestDeviceError(t *testing.T) {
	cause := fmt.Errorf("stream overrun")
	err := NewDeviceError("playback", "write", cause)
	if !errors.Is(err, cause) {
		t.Error("DeviceError must unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "playback") || !strings.Contains(msg, "write") {
		t.Errorf("message should name device and op: %s", msg)
	}
}
