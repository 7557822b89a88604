package pranthora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RoundTrip executes one HTTP request. It is the unit the Interceptor
// middleware wraps.
type RoundTrip func(*http.Request) (*http.Response, error)

// Interceptor wraps a RoundTrip with additional behavior: logging, retries,
// circuit breaking, traffic capture. Interceptors compose as plain function
// wrapping; there is no mutation of a live client.
type Interceptor func(RoundTrip) RoundTrip

// Chain composes interceptors so the first listed is the outermost wrapper.
func Chain(interceptors ...Interceptor) Interceptor {
	return func(next RoundTrip) RoundTrip {
		for i := len(interceptors) - 1; i >= 0; i-- {
			next = interceptors[i](next)
		}
		return next
	}
}

// requestor is the synchronous REST core shared by the resource services.
type requestor struct {
	baseURL string
	apiKey  string
	http    *http.Client
	rt      RoundTrip
	cfg     Config
}

func newRequestor(cfg Config) *requestor {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.requestTimeout()}
	}
	r := &requestor{
		baseURL: cfg.baseURL(),
		apiKey:  cfg.APIKey,
		http:    hc,
		cfg:     cfg,
	}
	rt := RoundTrip(hc.Do)
	if cfg.Interceptor != nil {
		rt = cfg.Interceptor(rt)
	}
	r.rt = rt
	return r
}

// do issues a request and decodes the JSON response body into out (when out
// is non-nil). Non-2xx statuses become *APIError; network failures become
// errors matching ErrConnectionFailed.
func (r *requestor) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	u := r.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("pranthora: encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("pranthora: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	authHeader(req.Header, r.apiKey)

	r.log("api_request", map[string]any{"method": method, "path": path})

	resp, err := r.rt(req)
	if err != nil {
		return NewConnectionError(u, "request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewConnectionError(u, "read_body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("pranthora: decode response: %w", err)
	}
	return nil
}

// apiErrorFrom builds the typed error for a non-2xx response. The message is
// pulled from the body's "error" or "detail" field when the body is JSON.
func apiErrorFrom(status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Detail != "" {
			msg = payload.Detail
		}
	}
	return &APIError{StatusCode: status, Message: msg, Body: string(body)}
}

func (r *requestor) log(event string, fields map[string]any) {
	if r.cfg.StructuredLogger != nil {
		r.cfg.StructuredLogger.Debug(event, fields)
	} else if r.cfg.Logger != nil {
		r.cfg.Logger(event, fields)
	}
}
