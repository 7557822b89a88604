package pranthora

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"nhooyr.io/websocket"
)

// interpret is the inbound half of the session: one goroutine consumes the
// socket so frames are handled strictly in arrival order. It exits when the
// session stops, the transport fails, or a terminal call-end arrives.
func (vs *VoiceSession) interpret(ctx context.Context) {
	for vs.running.Load() {
		typ, data, err := vs.tr.read(ctx)
		if err != nil {
			if vs.running.Load() && ctx.Err() == nil {
				vs.appendLog(logError, "receive failed: "+err.Error(), nil)
				vs.fireError(err.Error())
			}
			vs.running.Store(false)
			return
		}
		vs.messages.Add(1)
		if vs.handleFrame(typ, data) {
			vs.running.Store(false)
			return
		}
	}
}

// handleFrame dispatches one inbound frame and reports whether it ends the
// session. Binary frames and base64 media events feed the same playback
// path; everything else is an event or raw text.
func (vs *VoiceSession) handleFrame(typ websocket.MessageType, data []byte) (terminal bool) {
	if typ == websocket.MessageBinary {
		vs.playAgentAudio(data)
		return false
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		vs.handleText(string(data))
		return false
	}

	vs.handlerMu.RLock()
	onMessage := vs.onMessage
	vs.handlerMu.RUnlock()
	if onMessage != nil {
		onMessage(raw)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}

	switch env.Type {
	case eventMedia:
		var ev mediaEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Media.Payload == "" {
			vs.appendLog(logWarning, "media event without payload", nil)
			return false
		}
		pcm, err := base64.StdEncoding.DecodeString(ev.Media.Payload)
		if err != nil {
			vs.appendLog(logWarning, "media payload not base64: "+err.Error(), nil)
			return false
		}
		vs.playAgentAudio(pcm)

	case eventFirstResponse:
		var ev firstResponseEvent
		_ = json.Unmarshal(data, &ev)
		vs.firstResponse.Store(true)
		vs.appendLog(logRecv, "first response: "+ev.Message, nil)
		vs.handlerMu.RLock()
		fn := vs.onFirstResponse
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn(ev.Message)
		}

	case eventTranscript:
		var ev transcriptEvent
		_ = json.Unmarshal(data, &ev)
		vs.appendLog(logTranscript, ev.Role+": "+ev.Text, nil)
		vs.handlerMu.RLock()
		fn := vs.onTranscript
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn(ev.Role, ev.Text)
		}

	case eventInterruption:
		// Only the text stop sentinel flushes local playback.
		vs.appendLog(logFlag, "user interruption", nil)
		vs.silenceAgent()
		vs.fireInterruption()

	case eventAgentStop, eventAgentSpeakStop:
		vs.appendLog(logFlag, "agent speaking stop", nil)
		vs.silenceAgent()
		vs.handlerMu.RLock()
		fn := vs.onAgentSpeakingStop
		vs.handlerMu.RUnlock()
		if fn != nil {
			fn()
		}

	case eventCallEndDash, eventCallEndUnderbar:
		vs.appendLog(logInfo, "call ended by server", nil)
		return true

	case eventError:
		var ev serverErrorEvent
		_ = json.Unmarshal(data, &ev)
		vs.appendLog(logError, "server error: "+ev.Message, nil)
		vs.fireError(ev.Message)

	default:
		vs.appendLog(logRecv, "event: "+env.Type, raw)
	}
	return false
}

// handleText deals with non-JSON text frames. A bare stop marker, in any
// casing or wrapping, is an interruption signal: playback is flushed but the
// session continues. Anything else is logged and ignored.
func (vs *VoiceSession) handleText(text string) {
	trimmed := strings.TrimSpace(text)
	if strings.Contains(strings.ToLower(trimmed), "stop") {
		vs.appendLog(logFlag, "stop signal received", nil)
		vs.silenceAgent()
		if vs.bridge != nil {
			vs.bridge.flush()
		}
		vs.fireInterruption()
		return
	}
	if len(trimmed) > 100 {
		trimmed = trimmed[:100]
	}
	vs.appendLog(logRecv, "text: "+trimmed, nil)
}

// playAgentAudio accounts inbound PCM, raises the agent-speaking edge and
// hands the bytes to playback. Device drops are reported but never stop the
// session.
func (vs *VoiceSession) playAgentAudio(pcm []byte) {
	vs.bytesReceived.Add(int64(len(pcm)))
	vs.markAgentSpeaking()
	if vs.bridge == nil {
		return
	}
	if derr := vs.bridge.write(pcm); derr != nil {
		vs.reportDevice(derr)
	}
}
