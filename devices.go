package pranthora

// Audio device contracts. The SDK does not talk to audio hardware itself;
// it contracts with these interfaces and degrades gracefully when no
// implementation is available. The miniaudio subpackage provides a real
// microphone and speaker.

// CaptureDevice is a blocking source of raw PCM. Read fills p with up to
// len(p) bytes and must tolerate transient overflow by returning what it has
// rather than erroring.
type CaptureDevice interface {
	Read(p []byte) (int, error)
	Stop() error
	Close() error
}

// PlaybackDevice is a blocking sink for raw PCM. Write may fail when the
// device buffer is full; callers handle that per the session's write policy.
// Stop followed by Start clears any queued audio.
type PlaybackDevice interface {
	Write(p []byte) (int, error)
	Stop() error
	Start() error
	Close() error
}

// DeviceOpener constructs capture and playback devices for a session.
type DeviceOpener interface {
	OpenCapture(sampleRate, channels, frameSize int) (CaptureDevice, error)
	OpenPlayback(sampleRate, channels int) (PlaybackDevice, error)
}

// playbackChunkSize is the sub-chunk used when a full playback write fails
// on a full buffer.
const playbackChunkSize = 256

// bridge holds a session's capture and playback devices. Either may be nil:
// the session then skips audio I/O on that side while still processing the
// event protocol.
type bridge struct {
	capture  CaptureDevice
	playback PlaybackDevice
}

// openBridge opens both devices via opener. Failures are reported through
// report and leave the corresponding device nil; they never abort the
// session.
func openBridge(opener DeviceOpener, report func(*DeviceError)) *bridge {
	b := &bridge{}
	if opener == nil {
		return b
	}
	cap, err := opener.OpenCapture(DefaultSampleRate, DefaultChannels, DefaultFrameSamples)
	if err != nil {
		report(NewDeviceError("capture", "open", err))
	} else {
		b.capture = cap
	}
	play, err := opener.OpenPlayback(DefaultSampleRate, DefaultChannels)
	if err != nil {
		report(NewDeviceError("playback", "open", err))
	} else {
		b.playback = play
	}
	return b
}

// write delivers agent audio to the playback device. Devices may accept a
// partial prefix before failing, so retries always resume past the accepted
// bytes; re-queuing them would play the prefix twice. A failed write is
// retried in small fixed sub-chunks, and only a chunk that makes no progress
// drops the rest of the frame. A glitch beats stalling the receive loop.
func (b *bridge) write(p []byte) *DeviceError {
	if b.playback == nil || len(p) == 0 {
		return nil
	}
	n, err := b.playback.Write(p)
	if err == nil {
		return nil
	}
	rest := p[n:]
	for len(rest) > 0 {
		end := playbackChunkSize
		if end > len(rest) {
			end = len(rest)
		}
		m, err := b.playback.Write(rest[:end])
		rest = rest[m:]
		if err != nil && m == 0 {
			return NewDeviceError("playback", "write", err)
		}
	}
	return nil
}

// flush clears queued playback audio by stopping and restarting the device.
// Errors are swallowed; flushing is best effort.
func (b *bridge) flush() {
	if b.playback == nil {
		return
	}
	_ = b.playback.Stop()
	_ = b.playback.Start()
}

// close releases both devices. Release failures are never propagated past
// the teardown path.
func (b *bridge) close() {
	if b.capture != nil {
		_ = b.capture.Stop()
		_ = b.capture.Close()
		b.capture = nil
	}
	if b.playback != nil {
		_ = b.playback.Stop()
		_ = b.playback.Close()
		b.playback = nil
	}
}
