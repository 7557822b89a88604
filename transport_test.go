package pranthora

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		agentID string
		want    string
		wantErr bool
	}{
		{
			name:    "https upgrades to wss",
			base:    "https://api-pranthora.firstpeak.ai",
			agentID: "agent-1",
			want:    "wss://api-pranthora.firstpeak.ai/realtime-audio-stream?agent_id=agent-1",
		},
		{
			name:    "http upgrades to ws",
			base:    "http://localhost:5050",
			agentID: "agent-1",
			want:    "ws://localhost:5050/realtime-audio-stream?agent_id=agent-1",
		},
		{
			name:    "agent id is escaped",
			base:    "http://localhost:5050",
			agentID: "a b&c",
			want:    "ws://localhost:5050/realtime-audio-stream?agent_id=a+b%26c",
		},
		{
			name:    "invalid base",
			base:    "://nope",
			agentID: "agent-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := realtimeURL(tt.base, tt.agentID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("realtimeURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialTransport_SendsBothCredentials(t *testing.T) {
	mg := newMockGateway(t)

	cfg := Config{BaseURL: mg.URL(), APIKey: "opaque-key-123"}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := dialTransport(ctx, cfg, "agent-1")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer tr.close(websocket.StatusNormalClosure, "test done")

	hs := mg.lastHandshake()
	if hs == nil {
		t.Fatal("no handshake recorded")
	}
	if got := hs.Header.Get("Authorization"); got != "Bearer opaque-key-123" {
		t.Errorf("Authorization = %q", got)
	}
	if got := hs.Header.Get("X-API-Key"); got != "opaque-key-123" {
		t.Errorf("X-API-Key = %q", got)
	}
	if got := hs.URL.Query().Get("agent_id"); got != "agent-1" {
		t.Errorf("agent_id query = %q", got)
	}
	if !strings.HasSuffix(hs.URL.Path, realtimePath) {
		t.Errorf("path = %q, want suffix %q", hs.URL.Path, realtimePath)
	}
}

func TestDialTransport_CustomHandshakeHeaders(t *testing.T) {
	mg := newMockGateway(t)

	cfg := Config{BaseURL: mg.URL(), APIKey: "k"}
	cfg.HandshakeHeaders = map[string][]string{"X-Trace-Id": {"trace-42"}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := dialTransport(ctx, cfg, "agent-1")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer tr.close(websocket.StatusNormalClosure, "test done")

	if got := mg.lastHandshake().Header.Get("X-Trace-Id"); got != "trace-42" {
		t.Errorf("X-Trace-Id = %q", got)
	}
}

func TestDialTransport_RejectedHandshake(t *testing.T) {
	mg := newMockGateway(t)
	mg.rejectAuth = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := dialTransport(ctx, Config{BaseURL: mg.URL(), APIKey: "k"}, "agent-1")
	if err == nil {
		t.Fatal("expected dial error")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("error type = %T, want *ConnectionError", err)
	}
}

func TestTransport_SendAfterClose(t *testing.T) {
	mg := newMockGateway(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := dialTransport(ctx, Config{BaseURL: mg.URL(), APIKey: "k"}, "agent-1")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	tr.close(websocket.StatusNormalClosure, "bye")
	tr.close(websocket.StatusNormalClosure, "bye again")

	if err := tr.sendBinary(ctx, []byte{0x01}); !errors.Is(err, ErrClosed) {
		t.Errorf("sendBinary after close = %v, want ErrClosed", err)
	}
	if err := tr.sendJSON(ctx, "config", map[string]any{"type": "config"}); !errors.Is(err, ErrClosed) {
		t.Errorf("sendJSON after close = %v, want ErrClosed", err)
	}
}

func TestTransport_RoundTrip(t *testing.T) {
	mg := newMockGateway(t)
	mg.addFrame(textFrame(`{"type":"first_response","message":"hi"}`))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := dialTransport(ctx, Config{BaseURL: mg.URL(), APIKey: "k"}, "agent-1")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer tr.close(websocket.StatusNormalClosure, "test done")

	typ, data, err := tr.read(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if typ != websocket.MessageText {
		t.Errorf("message type = %v, want text", typ)
	}
	if !strings.Contains(string(data), "first_response") {
		t.Errorf("unexpected frame: %s", data)
	}

	if err := tr.sendBinary(ctx, []byte{0x01, 0x02}); err != nil {
		t.Errorf("sendBinary failed: %v", err)
	}
}
