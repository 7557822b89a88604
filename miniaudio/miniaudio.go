// Package miniaudio provides real microphone and speaker devices for voice
// sessions, backed by malgo for capture and oto for playback. It is split
// from the root package so that headless consumers of the SDK do not link
// against cgo audio backends.
package miniaudio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gen2brain/malgo"

	pranthora "github.com/firstpeak-ai/pranthora-go"
)

// playbackBufferSeconds bounds queued playback audio. Beyond this the writer
// reports a full buffer instead of letting latency grow without limit.
const playbackBufferSeconds = 2

// Opener opens system audio devices. One Opener owns one miniaudio context
// and at most one oto context; oto permits a single context per process, so
// share the Opener across sessions.
type Opener struct {
	ctx *malgo.AllocatedContext

	mu     sync.Mutex
	otoCtx *oto.Context
}

// NewOpener initializes the audio backend.
func NewOpener() (*Opener, error) {
	cfg := malgo.ContextConfig{}
	cfg.ThreadPriority = malgo.ThreadPriorityRealtime

	ctx, err := malgo.InitContext(nil, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("miniaudio: init context: %w", err)
	}
	return &Opener{ctx: ctx}, nil
}

// Close releases the audio backend. Devices opened from this Opener must be
// closed first.
func (o *Opener) Close() error {
	if o.ctx == nil {
		return nil
	}
	err := o.ctx.Uninit()
	o.ctx.Free()
	o.ctx = nil
	return err
}

// OpenCapture opens the default microphone at the given format. frameSize is
// in samples and sets the device period.
func (o *Opener) OpenCapture(sampleRate, channels, frameSize int) (pranthora.CaptureDevice, error) {
	m := &micCapture{
		buf: make([]byte, 0, sampleRate*2),
	}
	m.cond = sync.NewCond(&m.mu)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(frameSize)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, pInputSamples []byte, _ uint32) {
			m.mu.Lock()
			m.buf = append(m.buf, pInputSamples...)
			m.mu.Unlock()
			m.cond.Signal()
		},
	}

	device, err := malgo.InitDevice(o.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("miniaudio: init capture: %w", err)
	}
	m.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, fmt.Errorf("miniaudio: start capture: %w", err)
	}
	return m, nil
}

// OpenPlayback opens the default speaker at the given format. The oto
// context is created on first use and reused for subsequent devices.
func (o *Opener) OpenPlayback(sampleRate, channels int) (pranthora.PlaybackDevice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.otoCtx == nil {
		opts := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			// ~100ms for low latency at the cost of glitch headroom.
			BufferSize: sampleRate / 10 * 2 * channels,
		}
		ctx, ready, err := oto.NewContext(opts)
		if err != nil {
			return nil, fmt.Errorf("miniaudio: init playback: %w", err)
		}
		<-ready
		o.otoCtx = ctx
	}

	s := &speakerPlayback{
		otoCtx: o.otoCtx,
		bufCap: sampleRate * 2 * channels * playbackBufferSeconds,
		buf:    make([]byte, 0, sampleRate*2*channels),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// micCapture reads microphone PCM through a signal-driven buffer filled by
// the malgo data callback.
type micCapture struct {
	device *malgo.Device
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	closed bool
}

// Read blocks until capture data is available, then drains up to len(p)
// bytes. After Close it returns io.EOF.
func (m *micCapture) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.buf) == 0 && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return 0, io.EOF
	}

	n := copy(p, m.buf)
	m.buf = m.buf[n:]
	return n, nil
}

func (m *micCapture) Stop() error {
	m.mu.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
	if m.device != nil {
		return m.device.Stop()
	}
	return nil
}

func (m *micCapture) Close() error {
	m.Stop()
	if m.device != nil {
		m.device.Uninit()
		m.device = nil
	}
	return nil
}

// speakerPlayback queues PCM for an oto player that pulls it back out via
// Read. The player is created lazily on first write so an idle session never
// holds a hardware stream open.
type speakerPlayback struct {
	otoCtx *oto.Context
	player *oto.Player

	mu      sync.Mutex
	cond    *sync.Cond
	buf     []byte
	bufCap  int
	playing bool
	closed  bool
}

var errBufferFull = errors.New("miniaudio: playback buffer full")

// Write queues agent audio. When the queue is at capacity it accepts what
// fits and reports errBufferFull for the remainder.
func (s *speakerPlayback) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.New("miniaudio: playback closed")
	}

	room := s.bufCap - len(s.buf)
	if room <= 0 {
		return 0, errBufferFull
	}
	n := len(p)
	if n > room {
		n = room
	}
	s.buf = append(s.buf, p[:n]...)

	if !s.playing {
		s.playing = true
		s.player = s.otoCtx.NewPlayer(s)
		s.player.Play()
	}
	s.cond.Signal()

	if n < len(p) {
		return n, errBufferFull
	}
	return n, nil
}

// Read implements io.Reader for the oto player. It feeds silence once the
// device is closed so oto drains gracefully.
func (s *speakerPlayback) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.buf) == 0 && !s.closed {
		s.cond.Wait()
	}

	if s.closed && len(s.buf) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

// Stop discards queued audio and halts the current player. Paired with
// Start it implements the interruption flush.
func (s *speakerPlayback) Stop() error {
	s.mu.Lock()
	s.buf = s.buf[:0]
	if s.player != nil && s.playing {
		s.playing = false
		player := s.player
		s.player = nil
		s.mu.Unlock()

		player.Pause()
		player.Close()
		return nil
	}
	s.mu.Unlock()
	return nil
}

// Start re-arms playback after Stop. The player itself is recreated on the
// next Write.
func (s *speakerPlayback) Start() error {
	return nil
}

func (s *speakerPlayback) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	return nil
}
