package pranthora

import (
	"errors"
	"fmt"
)

// Common error variables.
var (
	// ErrClosed is returned when using a transport that has been closed.
	ErrClosed = errors.New("pranthora: connection is closed")

	// ErrInvalidConfig is returned when required configuration is missing.
	ErrInvalidConfig = errors.New("pranthora: invalid configuration")

	// ErrConnectionFailed is returned when the platform is unreachable or
	// the WebSocket handshake is rejected.
	ErrConnectionFailed = errors.New("pranthora: connection failed")

	// ErrAuthentication maps HTTP 401 responses.
	ErrAuthentication = errors.New("pranthora: authentication failed")

	// ErrPermission maps HTTP 403 responses.
	ErrPermission = errors.New("pranthora: permission denied")

	// ErrNotFound maps HTTP 404 responses.
	ErrNotFound = errors.New("pranthora: not found")

	// ErrRateLimited maps HTTP 429 responses.
	ErrRateLimited = errors.New("pranthora: rate limited")
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string // the offending field
	Value   string // the invalid value, when safe to log
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("pranthora: invalid config field %q (value: %q): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("pranthora: invalid config field %q: %s", e.Field, e.Message)
}

// Is implements error matching for ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// NewConfigError creates a configuration error.
func NewConfigError(field, value, message string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Message: message}
}

// ConnectionError wraps a transport-level failure during connect with the
// URL and operation that failed.
type ConnectionError struct {
	URL       string
	Operation string // e.g. "dial", "handshake"
	Cause     error
}

func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pranthora: %s failed for %q: %v", e.Operation, e.URL, e.Cause)
	}
	return fmt.Sprintf("pranthora: %s failed for %q", e.Operation, e.URL)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// Is implements error matching for ConnectionError.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnectionFailed }

// NewConnectionError creates a connection error.
func NewConnectionError(url, operation string, cause error) *ConnectionError {
	return &ConnectionError{URL: url, Operation: operation, Cause: cause}
}

// SendError reports a failure writing a frame to the realtime transport.
type SendError struct {
	Kind  string // "binary" or the control message type
	Cause error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("pranthora: failed to send %s frame: %v", e.Kind, e.Cause)
}

func (e *SendError) Unwrap() error { return e.Cause }

// NewSendError creates a send error.
func NewSendError(kind string, cause error) *SendError {
	return &SendError{Kind: kind, Cause: cause}
}

// DeviceError reports an audio-device failure. Device errors are soft:
// they are logged and degrade the session rather than ending it, except for
// capture failures which terminate the outbound side.
type DeviceError struct {
	Device string // "capture" or "playback"
	Op     string // "open", "read", "write", "close"
	Cause  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("pranthora: %s device %s failed: %v", e.Device, e.Op, e.Cause)
}

func (e *DeviceError) Unwrap() error { return e.Cause }

// NewDeviceError creates a device error.
func NewDeviceError(device, op string, cause error) *DeviceError {
	return &DeviceError{Device: device, Op: op, Cause: cause}
}

// APIError is returned for non-2xx REST responses. Its Is method matches the
// sentinel derived from the HTTP status, so callers can write
// errors.Is(err, pranthora.ErrNotFound).
type APIError struct {
	StatusCode int
	Message    string // extracted from the body's "error" or "detail" field
	Body       string // raw response body
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pranthora: API error (status %d): %s", e.StatusCode, e.Message)
}

// Is implements error matching by status-derived kind.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrAuthentication
	case 403:
		return target == ErrPermission
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}
