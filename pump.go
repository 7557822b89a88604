package pranthora

import (
	"context"
	"time"
)

// pumpYield is the pause between outbound frames. It keeps the pump from
// monopolizing the scheduler while staying well under one frame duration
// (64ms at 16kHz/1024 samples), so capture never backs up.
const pumpYield = 10 * time.Millisecond

// pump is the outbound half of the session: it moves capture frames onto the
// wire until the session stops or the send path fails. A capture read may
// block past cancellation; the loop observes the stop at the next frame
// boundary, so at most one in-flight device operation outlives Stop.
func (vs *VoiceSession) pump(ctx context.Context) {
	defer vs.silenceUser()

	if vs.bridge == nil || vs.bridge.capture == nil {
		return
	}
	capture := vs.bridge.capture

	frame := make([]byte, DefaultFrameSamples*2*DefaultChannels)
	for vs.running.Load() {
		n, err := capture.Read(frame)
		if err != nil {
			if vs.running.Load() {
				vs.reportDevice(NewDeviceError("capture", "read", err))
			}
			return
		}
		if !vs.running.Load() {
			return
		}
		if n > 0 {
			if err := vs.tr.sendBinary(ctx, frame[:n]); err != nil {
				if vs.running.Load() {
					vs.appendLog(logError, "send audio failed: "+err.Error(), nil)
				}
				return
			}
			vs.bytesSent.Add(int64(n))
			vs.markUserSpeaking()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(pumpYield):
		}
	}
}
