// Package pranthora provides a Go client for the Pranthora voice-agent
// platform.
//
// The package has two halves. The REST half wraps agent management and
// outbound call initiation: create, list, get, update and delete agents, and
// start phone or conference calls. The realtime half is a concurrent
// WebSocket client that streams microphone audio to an agent while playing
// the agent's audio back and dispatching protocol events to caller-supplied
// callbacks.
//
// Key features:
//   - Typed REST resources with friendly-name resolution for models, voices,
//     transcribers and VAD providers
//   - Automatic credential routing: JWT-shaped keys use bearer auth, opaque
//     keys use the X-API-Key header
//   - Realtime voice sessions with speaking-state tracking, transcript and
//     interruption events, and an append-only session event log
//   - Graceful degradation when no audio hardware is available: the event
//     protocol keeps working without capture or playback devices
//   - Retry and circuit-breaker middleware for REST calls
//
// Basic REST usage:
//
//	client, err := pranthora.New(pranthora.Config{
//		BaseURL: "https://api-pranthora.firstpeak.ai",
//		APIKey:  os.Getenv("PRANTHORA_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	agents, err := client.Agents.List(ctx)
//
// Realtime usage:
//
//	vs := pranthora.NewVoiceSession(cfg, opener) // opener may be nil
//	vs.OnTranscript(func(role, text string) { fmt.Printf("[%s] %s\n", role, text) })
//	vs.Start("agent-id", nil)
//	defer vs.Stop()
//
// Audio devices are modeled as interfaces (CaptureDevice, PlaybackDevice,
// DeviceOpener); the miniaudio subpackage provides a real microphone and
// speaker implementation.
package pranthora
