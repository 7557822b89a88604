package pranthora

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"nhooyr.io/websocket"
)

// mockFrame is one scripted frame the mock gateway sends to a client.
type mockFrame struct {
	typ  websocket.MessageType
	data []byte
}

func textFrame(s string) mockFrame {
	return mockFrame{typ: websocket.MessageText, data: []byte(s)}
}

func binaryFrame(b []byte) mockFrame {
	return mockFrame{typ: websocket.MessageBinary, data: b}
}

func jsonFrame(t *testing.T, v any) mockFrame {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal mock frame: %v", err)
	}
	return mockFrame{typ: websocket.MessageText, data: data}
}

// mockGateway simulates the realtime voice gateway. It verifies the
// handshake, sends its scripted frames and then either closes or keeps
// reading until the client leaves.
type mockGateway struct {
	server *httptest.Server
	t      *testing.T

	frames      []mockFrame
	closeAfter  bool
	rejectAuth  bool
	handshakeMu sync.Mutex
	handshake   *http.Request
	received    [][]byte
}

func newMockGateway(t *testing.T) *mockGateway {
	mg := &mockGateway{t: t}
	mg.server = httptest.NewServer(http.HandlerFunc(mg.handle))
	t.Cleanup(mg.server.Close)
	return mg
}

// URL returns the base HTTP URL; the client derives the ws URL itself.
func (mg *mockGateway) URL() string { return mg.server.URL }

func (mg *mockGateway) addFrame(f mockFrame) { mg.frames = append(mg.frames, f) }

// lastHandshake returns the most recent upgrade request.
func (mg *mockGateway) lastHandshake() *http.Request {
	mg.handshakeMu.Lock()
	defer mg.handshakeMu.Unlock()
	return mg.handshake
}

// receivedFrames returns data frames the gateway read from the client.
func (mg *mockGateway) receivedFrames() [][]byte {
	mg.handshakeMu.Lock()
	defer mg.handshakeMu.Unlock()
	out := make([][]byte, len(mg.received))
	copy(out, mg.received)
	return out
}

func (mg *mockGateway) handle(w http.ResponseWriter, r *http.Request) {
	mg.handshakeMu.Lock()
	mg.handshake = r.Clone(r.Context())
	mg.handshakeMu.Unlock()

	if mg.rejectAuth {
		http.Error(w, "Missing authentication", http.StatusUnauthorized)
		return
	}
	if r.Header.Get("X-API-Key") == "" && r.Header.Get("Authorization") == "" {
		http.Error(w, "Missing authentication", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		mg.t.Errorf("failed to upgrade to websocket: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	for _, f := range mg.frames {
		if err := conn.Write(r.Context(), f.typ, f.data); err != nil {
			return
		}
	}

	if mg.closeAfter {
		conn.Close(websocket.StatusNormalClosure, "done")
		return
	}

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}
		mg.handshakeMu.Lock()
		mg.received = append(mg.received, data)
		mg.handshakeMu.Unlock()
	}
}
