package pranthora

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds all configuration for the Pranthora client, covering both the
// REST resources and realtime voice sessions.
type Config struct {
	// BaseURL is the platform base address.
	// Defaults to the production endpoint when empty.
	// Use "http://localhost:5050" for local development.
	BaseURL string

	// APIKey authenticates every request. JWT-shaped keys are sent as
	// "Authorization: Bearer", opaque keys as "X-API-Key"; the realtime
	// handshake always carries both forms since the gateway accepts either.
	// Required: Yes
	APIKey string

	// DialTimeout bounds WebSocket connection establishment.
	// If zero, DefaultDialTimeout applies.
	DialTimeout time.Duration

	// RequestTimeout bounds each REST request. Defaults to 30 seconds.
	RequestTimeout time.Duration

	// PingInterval is the keepalive ping period for realtime sessions.
	// Defaults to 20 seconds.
	PingInterval time.Duration

	// PongTimeout is how long to wait for a pong before treating the
	// connection as lost. Defaults to 10 seconds.
	PongTimeout time.Duration

	// HandshakeHeaders adds custom headers to the WebSocket handshake,
	// e.g. for proxies or tracing.
	HandshakeHeaders http.Header

	// HTTPClient overrides the client used for REST requests.
	// When nil a client with RequestTimeout is constructed.
	HTTPClient *http.Client

	// Interceptor wraps the REST round trip. Compose with Chain,
	// RetryInterceptor or BreakerInterceptor.
	Interceptor Interceptor

	// DialRetry, when set, retries the realtime WebSocket dial with
	// backoff before giving up. REST requests are not affected; use
	// RetryInterceptor for those.
	DialRetry *RetryConfig

	// Logger is called for significant operational events with structured
	// fields. Optional; no logging occurs when nil.
	Logger func(event string, fields map[string]any)

	// StructuredLogger provides leveled logging and takes precedence over
	// Logger when both are set. See NewLogger and NewLoggerFromEnv.
	StructuredLogger *Logger
}

// Defaults matching the platform's web audio stream.
const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api-pranthora.firstpeak.ai"

	// DefaultSampleRate is the PCM sample rate of the web media stream.
	DefaultSampleRate = 16000

	// DefaultChannels is the channel count (mono).
	DefaultChannels = 1

	// DefaultFrameSamples is the number of 16-bit samples read from the
	// capture device per outbound frame.
	DefaultFrameSamples = 1024

	// DefaultDialTimeout bounds the WebSocket handshake.
	DefaultDialTimeout = 15 * time.Second

	defaultRequestTimeout = 30 * time.Second
	defaultPingInterval   = 20 * time.Second
	defaultPongTimeout    = 10 * time.Second

	userAgent = "pranthora-go/1.0.0"
)

// ValidateConfig checks that required fields are present and well formed.
// It returns a *ConfigError naming the offending field.
func ValidateConfig(cfg Config) error {
	if cfg.APIKey == "" {
		return NewConfigError("APIKey", "", "cannot be empty")
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return NewConfigError("BaseURL", cfg.BaseURL, "must be an http or https URL")
		}
	}
	if cfg.DialTimeout < 0 {
		return NewConfigError("DialTimeout", cfg.DialTimeout.String(), "cannot be negative")
	}
	if cfg.RequestTimeout < 0 {
		return NewConfigError("RequestTimeout", cfg.RequestTimeout.String(), "cannot be negative")
	}
	if cfg.PingInterval < 0 || cfg.PongTimeout < 0 {
		return NewConfigError("PingInterval", "", "keepalive intervals cannot be negative")
	}
	return nil
}

func (cfg Config) baseURL() string {
	if cfg.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(cfg.BaseURL, "/")
}

func (cfg Config) dialTimeout() time.Duration {
	if cfg.DialTimeout == 0 {
		return DefaultDialTimeout
	}
	return cfg.DialTimeout
}

func (cfg Config) requestTimeout() time.Duration {
	if cfg.RequestTimeout == 0 {
		return defaultRequestTimeout
	}
	return cfg.RequestTimeout
}

func (cfg Config) pingInterval() time.Duration {
	if cfg.PingInterval == 0 {
		return defaultPingInterval
	}
	return cfg.PingInterval
}

func (cfg Config) pongTimeout() time.Duration {
	if cfg.PongTimeout == 0 {
		return defaultPongTimeout
	}
	return cfg.PongTimeout
}

// looksLikeJWT reports whether key parses as a JWT without verifying its
// signature. The backend issues JWT session keys alongside opaque API keys
// and expects each in a different header.
func looksLikeJWT(key string) bool {
	if strings.Count(key, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(key), jwt.MapClaims{})
	return err == nil
}

// authHeader applies the single credential header appropriate for the key
// shape. Used by the REST requestor.
func authHeader(h http.Header, key string) {
	if looksLikeJWT(key) {
		h.Set("Authorization", "Bearer "+key)
	} else {
		h.Set("X-API-Key", key)
	}
}

// realtimeHeaders builds the WebSocket handshake headers. Both credential
// forms are sent; the gateway picks whichever it expects.
func realtimeHeaders(cfg Config) http.Header {
	h := http.Header{}
	for k, vals := range cfg.HandshakeHeaders {
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	h.Set("Authorization", "Bearer "+cfg.APIKey)
	h.Set("X-API-Key", cfg.APIKey)
	h.Set("User-Agent", userAgent)
	return h
}
