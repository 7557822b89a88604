package pranthora

import (
	"time"
)

// envelope is the first-pass parse of a JSON frame, used to pick the variant
// before decoding the full payload.
type envelope struct {
	Type string `json:"type"`
}

// Inbound JSON event types. The gateway evolved some names over time, so a
// few variants have two accepted spellings.
const (
	eventMedia           = "media"
	eventFirstResponse   = "first_response"
	eventTranscript      = "transcript"
	eventInterruption    = "interruption"
	eventAgentStop       = "agent_stop"
	eventAgentSpeakStop  = "agent_speaking_stop"
	eventCallEndDash     = "call-end"
	eventCallEndUnderbar = "call_end"
	eventError           = "error"
)

// mediaEvent carries base64 audio inside a JSON envelope. The gateway sends
// most audio as raw binary frames; media events are the fallback path.
type mediaEvent struct {
	Type  string `json:"type"`
	Media struct {
		Payload string `json:"payload"`
	} `json:"media"`
}

// firstResponseEvent announces the agent's opening message.
type firstResponseEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// transcriptEvent carries one utterance transcript.
type transcriptEvent struct {
	Type string `json:"type"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// serverErrorEvent is a non-fatal error reported by the gateway.
type serverErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// LogEntry is one record in the session event log. Entries are appended by
// the session internals and readable by callers via Logs.
type LogEntry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Category string    `json:"category"`
	Message  string    `json:"message"`
	Data     any       `json:"data,omitempty"`
}

// Log categories used by the session internals.
const (
	logInfo       = "info"
	logConnected  = "connected"
	logDisconnect = "disconnected"
	logSend       = "send"
	logRecv       = "recv"
	logFlag       = "flag"
	logTranscript = "transcript"
	logAudio      = "audio"
	logError      = "error"
	logWarning    = "warning"
)

// SessionStats is a point-in-time snapshot of session telemetry. Counter
// reads are best-effort with respect to a running session.
type SessionStats struct {
	IsRunning             bool    `json:"is_running"`
	DurationSeconds       float64 `json:"duration_seconds"`
	MessagesReceived      int64   `json:"messages_received"`
	AudioBytesSent        int64   `json:"audio_bytes_sent"`
	AudioBytesReceived    int64   `json:"audio_bytes_received"`
	FirstResponseReceived bool    `json:"first_response_received"`
	AgentSpeaking         bool    `json:"agent_speaking"`
	UserSpeaking          bool    `json:"user_speaking"`
	LogCount              int     `json:"log_count"`
}
