package pranthora

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// realtimePath is the gateway's web media stream endpoint.
const realtimePath = "/realtime-audio-stream"

// transport owns one WebSocket connection to the realtime gateway: the dial
// handshake, frame reads and writes, keepalive pings and the close path.
type transport struct {
	conn    *websocket.Conn
	url     string
	writeMu sync.Mutex
	closed  chan struct{}
	once    sync.Once
}

// realtimeURL builds the WebSocket URL for an agent, upgrading https to wss
// and http to ws.
func realtimeURL(base, agentID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", NewConfigError("BaseURL", base, "invalid URL format")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + realtimePath
	q := u.Query()
	q.Set("agent_id", agentID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// dialTransport establishes the connection. Handshake rejection and network
// failures surface as *ConnectionError.
func dialTransport(ctx context.Context, cfg Config, agentID string) (*transport, error) {
	u, err := realtimeURL(cfg.baseURL(), agentID)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.dialTimeout())
	defer cancel()

	conn, resp, err := websocket.Dial(dialCtx, u, &websocket.DialOptions{
		HTTPHeader: realtimeHeaders(cfg),
	})
	if err != nil {
		op := "dial"
		if resp != nil {
			op = "handshake"
		}
		return nil, NewConnectionError(u, op, err)
	}
	// Inbound audio frames can be large; the default read limit is too small
	// for a burst of PCM.
	conn.SetReadLimit(1 << 22)

	return &transport{conn: conn, url: u, closed: make(chan struct{})}, nil
}

// read returns the next inbound frame. It blocks until a frame arrives, the
// context is cancelled, or the peer closes the connection.
func (t *transport) read(ctx context.Context) (websocket.MessageType, []byte, error) {
	return t.conn.Read(ctx)
}

// sendBinary writes one raw audio frame.
func (t *transport) sendBinary(ctx context.Context, b []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	select {
	case <-t.closed:
		return ErrClosed
	default:
	}
	if err := t.conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return NewSendError("binary", err)
	}
	return nil
}

// sendJSON marshals and writes one control message.
func (t *transport) sendJSON(ctx context.Context, kind string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return NewSendError(kind, err)
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	select {
	case <-t.closed:
		return ErrClosed
	default:
	}
	if err := t.conn.Write(ctx, websocket.MessageText, b); err != nil {
		return NewSendError(kind, err)
	}
	return nil
}

// keepalive pings the peer every interval and treats a missed pong within
// pongTimeout as connection loss: the connection is closed, which terminates
// the read loop with an error.
func (t *transport) keepalive(ctx context.Context, interval, pongTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.closed:
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pongTimeout)
			err := t.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				t.close(websocket.StatusGoingAway, "keepalive timeout")
				return
			}
		}
	}
}

// close shuts the connection down. Idempotent, callable from any teardown
// path including before the handshake fully completed.
func (t *transport) close(code websocket.StatusCode, reason string) {
	t.once.Do(func() {
		close(t.closed)
		_ = t.conn.Close(code, reason)
	})
}
