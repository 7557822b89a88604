package pranthora

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// VoiceSession is a realtime voice interaction with one agent. It streams
// capture audio to the gateway while playing agent audio back and dispatching
// protocol events to registered observers.
//
// At most one session is active per VoiceSession at a time. Start is
// non-blocking: all network and audio I/O runs on background goroutines, and
// state flows back to the caller only through counters, flags and observer
// callbacks. Callbacks run on the session's goroutines and should not block.
type VoiceSession struct {
	cfg    Config
	opener DeviceOpener

	mu      sync.Mutex // guards Start/Stop transitions
	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{} // closed when the run goroutine has torn down

	tr     *transport
	bridge *bridge

	sessionID  string
	startNanos atomic.Int64
	endNanos   atomic.Int64

	bytesSent     atomic.Int64
	bytesReceived atomic.Int64
	messages      atomic.Int64
	firstResponse atomic.Bool
	agentSpeaking atomic.Bool
	userSpeaking  atomic.Bool

	logMu sync.Mutex
	logs  []LogEntry

	handlerMu            sync.RWMutex
	onConnected          func()
	onDisconnected       func()
	onFirstResponse      func(message string)
	onTranscript         func(role, text string)
	onInterruption       func()
	onAgentSpeakingStart func()
	onAgentSpeakingStop  func()
	onUserSpeakingStart  func()
	onUserSpeakingStop   func()
	onError              func(message string)
	onMessage            func(event map[string]any)
}

// NewVoiceSession creates a session controller. opener may be nil, in which
// case the session runs in the degraded no-audio mode: the event protocol is
// fully processed but no audio is captured or played.
func NewVoiceSession(cfg Config, opener DeviceOpener) *VoiceSession {
	return &VoiceSession{cfg: cfg, opener: opener}
}

// Observer registration. Each setter replaces the previous callback.

// OnConnected registers a callback fired once the WebSocket handshake
// succeeds.
func (vs *VoiceSession) OnConnected(fn func()) { vs.setHandler(func() { vs.onConnected = fn }) }

// OnDisconnected registers a callback fired when the session ends. It fires
// on every exit path, including a failed connect.
func (vs *VoiceSession) OnDisconnected(fn func()) { vs.setHandler(func() { vs.onDisconnected = fn }) }

// OnFirstResponse registers a callback for the agent's opening message.
func (vs *VoiceSession) OnFirstResponse(fn func(message string)) {
	vs.setHandler(func() { vs.onFirstResponse = fn })
}

// OnTranscript registers a callback for utterance transcripts.
func (vs *VoiceSession) OnTranscript(fn func(role, text string)) {
	vs.setHandler(func() { vs.onTranscript = fn })
}

// OnInterruption registers a callback fired when the user interrupts the
// agent.
func (vs *VoiceSession) OnInterruption(fn func()) { vs.setHandler(func() { vs.onInterruption = fn }) }

// OnAgentSpeakingStart registers an edge callback fired when agent audio
// begins after silence.
func (vs *VoiceSession) OnAgentSpeakingStart(fn func()) {
	vs.setHandler(func() { vs.onAgentSpeakingStart = fn })
}

// OnAgentSpeakingStop registers a callback fired on an explicit agent-stop
// event.
func (vs *VoiceSession) OnAgentSpeakingStop(fn func()) {
	vs.setHandler(func() { vs.onAgentSpeakingStop = fn })
}

// OnUserSpeakingStart registers an edge callback fired when capture audio
// starts flowing.
func (vs *VoiceSession) OnUserSpeakingStart(fn func()) {
	vs.setHandler(func() { vs.onUserSpeakingStart = fn })
}

// OnUserSpeakingStop registers an edge callback fired when the outbound
// audio side ends.
func (vs *VoiceSession) OnUserSpeakingStop(fn func()) {
	vs.setHandler(func() { vs.onUserSpeakingStop = fn })
}

// OnError registers a callback for connection, device and server errors.
func (vs *VoiceSession) OnError(fn func(message string)) {
	vs.setHandler(func() { vs.onError = fn })
}

// OnMessage registers a callback invoked with every structured JSON event
// before type-specific dispatch, recognized or not.
func (vs *VoiceSession) OnMessage(fn func(event map[string]any)) {
	vs.setHandler(func() { vs.onMessage = fn })
}

func (vs *VoiceSession) setHandler(set func()) {
	vs.handlerMu.Lock()
	set()
	vs.handlerMu.Unlock()
}

// Start begins a session with agentID. overrides, when non-nil, are sent as
// a one-shot config control message before audio streaming begins.
//
// Start returns immediately; the session runs in the background until Stop,
// a server call-end, or an unrecoverable transport error. Calling Start
// while a session is running is a benign no-op that returns false and leaves
// the running session untouched.
func (vs *VoiceSession) Start(agentID string, overrides map[string]any) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if vs.running.Load() {
		vs.opLog(logWarning, "session already running", nil)
		return false
	}

	// A stopped session is not idle until its run goroutine has released
	// the transport and devices. Starting before that would hand the new
	// session fields the old teardown is about to clear.
	if vs.done != nil {
		<-vs.done
	}

	// Reset per-session state.
	vs.sessionID = uuid.NewString()
	vs.bytesSent.Store(0)
	vs.bytesReceived.Store(0)
	vs.messages.Store(0)
	vs.firstResponse.Store(false)
	vs.agentSpeaking.Store(false)
	vs.userSpeaking.Store(false)
	vs.endNanos.Store(0)
	vs.startNanos.Store(time.Now().UnixNano())
	vs.logMu.Lock()
	vs.logs = nil
	vs.logMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	vs.cancel = cancel
	done := make(chan struct{})
	vs.done = done
	vs.running.Store(true)

	go vs.run(ctx, cancel, done, agentID, overrides)
	return true
}

// Stop ends the running session. Both I/O loops observe the cancellation at
// their next suspension point; audio devices and the transport are released
// before the disconnected observer fires. Returns false when nothing is
// running.
func (vs *VoiceSession) Stop() bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if !vs.running.Load() {
		vs.opLog(logWarning, "stop ignored: no session running", nil)
		return false
	}
	vs.running.Store(false)
	if vs.cancel != nil {
		vs.cancel()
	}
	return true
}

// IsRunning reports whether a session is active.
func (vs *VoiceSession) IsRunning() bool { return vs.running.Load() }

// run is the session body: connect, stream, tear down. It owns the transport
// and device handles; no other goroutine closes them. Closing done marks the
// session idle again; it happens after the handles are released so a waiting
// Start never observes a half-torn-down session.
func (vs *VoiceSession) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, agentID string, overrides map[string]any) {
	defer func() {
		cancel()
		if vs.bridge != nil {
			vs.bridge.close()
			vs.bridge = nil
		}
		if vs.tr != nil {
			vs.tr.close(websocket.StatusNormalClosure, "session ended")
			vs.tr = nil
		}
		vs.running.Store(false)
		vs.endNanos.Store(time.Now().UnixNano())
		vs.appendLog(logDisconnect, "session ended", nil)
		close(done)
		vs.fireDisconnected()
	}()

	vs.appendLog(logInfo, "connecting", map[string]any{"agent_id": agentID})

	var tr *transport
	var err error
	if vs.cfg.DialRetry != nil {
		err = WithRetry(ctx, *vs.cfg.DialRetry, func() error {
			tr, err = dialTransport(ctx, vs.cfg, agentID)
			return err
		})
	} else {
		tr, err = dialTransport(ctx, vs.cfg, agentID)
	}
	if err != nil {
		vs.appendLog(logError, "connect failed: "+err.Error(), nil)
		vs.fireError(err.Error())
		return
	}
	vs.tr = tr
	vs.appendLog(logConnected, "websocket connected", nil)
	vs.fireConnected()

	if overrides != nil {
		msg := map[string]any{"type": "config", "config": overrides}
		if err := tr.sendJSON(ctx, "config", msg); err != nil {
			vs.appendLog(logError, "send config failed: "+err.Error(), nil)
		} else {
			vs.appendLog(logSend, "sent config overrides", overrides)
		}
	}

	vs.bridge = openBridge(vs.opener, vs.reportDevice)
	if vs.bridge.capture != nil || vs.bridge.playback != nil {
		vs.appendLog(logAudio, "audio streams started", nil)
	} else if vs.opener != nil {
		vs.appendLog(logWarning, "audio unavailable, protocol-only mode", nil)
	}

	go tr.keepalive(ctx, vs.cfg.pingInterval(), vs.cfg.pongTimeout())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vs.pump(ctx)
	}()

	vs.interpret(ctx)

	// The pump may be parked in a capture read; stopping the device
	// unblocks it so teardown cannot stall.
	if vs.bridge.capture != nil {
		_ = vs.bridge.capture.Stop()
	}
	wg.Wait()
}

// Stats returns a snapshot of session telemetry. Reads are best-effort
// against a live session and suitable for display, not control decisions.
func (vs *VoiceSession) Stats() SessionStats {
	start := vs.startNanos.Load()
	var duration float64
	if start > 0 {
		end := vs.endNanos.Load()
		if end == 0 {
			end = time.Now().UnixNano()
		}
		duration = time.Duration(end - start).Seconds()
	}
	vs.logMu.Lock()
	logCount := len(vs.logs)
	vs.logMu.Unlock()

	return SessionStats{
		IsRunning:             vs.running.Load(),
		DurationSeconds:       duration,
		MessagesReceived:      vs.messages.Load(),
		AudioBytesSent:        vs.bytesSent.Load(),
		AudioBytesReceived:    vs.bytesReceived.Load(),
		FirstResponseReceived: vs.firstResponse.Load(),
		AgentSpeaking:         vs.agentSpeaking.Load(),
		UserSpeaking:          vs.userSpeaking.Load(),
		LogCount:              logCount,
	}
}

// Logs returns a copy of the session event log in append order.
func (vs *VoiceSession) Logs() []LogEntry {
	vs.logMu.Lock()
	defer vs.logMu.Unlock()
	out := make([]LogEntry, len(vs.logs))
	copy(out, vs.logs)
	return out
}

// appendLog records an entry in the session event log and mirrors it to the
// configured logger.
func (vs *VoiceSession) appendLog(category, message string, data any) {
	entry := LogEntry{
		ID:       uuid.NewString(),
		Time:     time.Now(),
		Category: category,
		Message:  message,
		Data:     data,
	}
	vs.logMu.Lock()
	vs.logs = append(vs.logs, entry)
	vs.logMu.Unlock()
	vs.opLog(category, message, data)
}

// opLog writes to the configured logger only.
func (vs *VoiceSession) opLog(category, message string, data any) {
	fields := map[string]any{"session_id": vs.sessionID, "msg": message}
	if data != nil {
		fields["data"] = data
	}
	if vs.cfg.StructuredLogger != nil {
		switch category {
		case logError:
			vs.cfg.StructuredLogger.Error(category, fields)
		case logWarning:
			vs.cfg.StructuredLogger.Warn(category, fields)
		default:
			vs.cfg.StructuredLogger.Debug(category, fields)
		}
	} else if vs.cfg.Logger != nil {
		vs.cfg.Logger(category, fields)
	}
}

// reportDevice logs a soft device failure and notifies the error observer.
func (vs *VoiceSession) reportDevice(derr *DeviceError) {
	vs.appendLog(logError, derr.Error(), nil)
	vs.fireError(derr.Error())
}

// Edge helpers. markAgentSpeaking fires the start edge exactly once per
// silence-to-audio transition; silenceAgent forces the flag false without an
// edge event (explicit signals carry their own observer).

func (vs *VoiceSession) markAgentSpeaking() {
	if vs.agentSpeaking.CompareAndSwap(false, true) {
		vs.appendLog(logFlag, "agent speaking start", nil)
		vs.handlerMu.RLock()
		fn := vs.onAgentSpeakingStart
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn()
		}
	}
}

func (vs *VoiceSession) silenceAgent() {
	vs.agentSpeaking.Store(false)
}

func (vs *VoiceSession) markUserSpeaking() {
	if vs.userSpeaking.CompareAndSwap(false, true) {
		vs.appendLog(logFlag, "user speaking start", nil)
		vs.handlerMu.RLock()
		fn := vs.onUserSpeakingStart
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn()
		}
	}
}

func (vs *VoiceSession) silenceUser() {
	if vs.userSpeaking.CompareAndSwap(true, false) {
		vs.appendLog(logFlag, "user speaking stop", nil)
		vs.handlerMu.RLock()
		fn := vs.onUserSpeakingStop
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn()
		}
	}
}

// Observer firing helpers.

func (vs *VoiceSession) fireConnected() {
	vs.handlerMu.RLock()
	fn := vs.onConnected
	vs.handlerMu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (vs *VoiceSession) fireDisconnected() {
	vs.handlerMu.RLock()
	fn := vs.onDisconnected
	vs.handlerMu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (vs *VoiceSession) fireError(msg string) {
	vs.handlerMu.RLock()
	fn := vs.onError
	vs.handlerMu.RUnlock()
	if fn != nil {
		fn(msg)
	}
}

func (vs *VoiceSession) fireInterruption() {
	vs.handlerMu.RLock()
	fn := vs.onInterruption
	vs.handlerMu.RUnlock()
	if fn != nil {
		fn()
	}
}
