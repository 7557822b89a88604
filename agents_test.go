package pranthora

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// capturedRequest records what the agents API received.
type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	body   map[string]any
}

// newAgentTestServer returns a client against a server that captures
// requests and answers each path with the configured JSON.
func newAgentTestServer(t *testing.T, responses map[string]string) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cr := capturedRequest{method: r.Method, path: r.URL.Path, query: map[string]string{}}
		for k := range r.URL.Query() {
			cr.query[k] = r.URL.Query().Get(k)
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			json.Unmarshal(data, &cr.body)
		}
		captured = append(captured, cr)

		if resp, ok := responses[r.Method+" "+r.URL.Path]; ok {
			w.Write([]byte(resp))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c, &captured
}

func dig(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}

func TestAgentCreate_DefaultsAndResolution(t *testing.T) {
	c, captured := newAgentTestServer(t, nil)

	_, err := c.Agents.Create(context.Background(), CreateAgentParams{Name: "Support Bot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cr := (*captured)[0]
	if cr.method != "POST" || cr.path != "/agents" {
		t.Fatalf("request = %s %s", cr.method, cr.path)
	}

	if got := dig(cr.body, "agent", "name"); got != "Support Bot" {
		t.Errorf("agent.name = %v", got)
	}
	if got := dig(cr.body, "agent_model_config", "model_provider_id"); got != LLMModels["gpt-4.1-mini"] {
		t.Errorf("default model not resolved: %v", got)
	}
	if got := dig(cr.body, "agent_model_config", "temperature"); got != 0.7 {
		t.Errorf("default temperature = %v", got)
	}
	if got := dig(cr.body, "agent_model_config", "max_tokens"); got != float64(150) {
		t.Errorf("default max_tokens = %v", got)
	}
	if got := dig(cr.body, "tts_config", "tts_provider_id"); got != TTSProviders["deepgram"] {
		t.Errorf("default voice provider = %v", got)
	}
	if got := dig(cr.body, "tts_config", "voice_name"); got != Voices["thalia"].ID {
		t.Errorf("default voice = %v", got)
	}
	if got := dig(cr.body, "transcriber_config", "provider_id"); got != STTConfigs["deepgram_nova_3"].ID {
		t.Errorf("default transcriber = %v", got)
	}
	if got := dig(cr.body, "vad_config", "vad_provider_id"); got != VADProviders["default"] {
		t.Errorf("default VAD = %v", got)
	}
}

func TestAgentCreate_NamedVoiceResolved(t *testing.T) {
	c, captured := newAgentTestServer(t, nil)

	_, err := c.Agents.Create(context.Background(), CreateAgentParams{
		Name:  "Caller",
		Voice: "darla",
		Model: "gemini-2.5-flash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cr := (*captured)[0]
	if got := dig(cr.body, "tts_config", "voice_name"); got != Voices["darla"].ID {
		t.Errorf("voice = %v", got)
	}
	if got := dig(cr.body, "tts_config", "tts_provider_id"); got != TTSProviders["cartesia"] {
		t.Errorf("voice provider = %v, want cartesia", got)
	}
	if got := dig(cr.body, "agent_model_config", "model_provider_id"); got != LLMModels["gemini-2.5-flash"] {
		t.Errorf("model = %v", got)
	}
}

func TestAgentCreate_UnknownNamesPassThrough(t *testing.T) {
	c, captured := newAgentTestServer(t, nil)

	_, err := c.Agents.Create(context.Background(), CreateAgentParams{
		Name:  "Raw",
		Model: "custom-model-id",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := dig((*captured)[0].body, "agent_model_config", "model_provider_id"); got != "custom-model-id" {
		t.Errorf("unrecognized model must pass through, got %v", got)
	}
}

func TestAgentGet_AnnotatesFriendlyNames(t *testing.T) {
	resp := fmt.Sprintf(`{
		"id": "agent-1",
		"agent": {"name": "Bot", "is_active": true},
		"configurations": {
			"model": {"model_provider_id": %q},
			"tts": {"tts_provider_id": %q, "voice_name": "aura-2-thalia-en"},
			"transcriber": {"provider_id": %q},
			"vad": {"vad_provider_id": %q}
		}
	}`, LLMModels["gpt-4.1"], TTSProviders["deepgram"], STTConfigs["deepgram_nova_3"].ID, VADProviders["default"])

	c, _ := newAgentTestServer(t, map[string]string{"GET /agents/agent-1": resp})

	a, err := c.Agents.Get(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	cfg := a.Configurations
	if cfg.Model.ModelName != "gpt-4.1" {
		t.Errorf("ModelName = %q", cfg.Model.ModelName)
	}
	if cfg.TTS.TTSProviderName != "deepgram" {
		t.Errorf("TTSProviderName = %q", cfg.TTS.TTSProviderName)
	}
	if cfg.TTS.VoiceName != "thalia" {
		t.Errorf("VoiceName = %q", cfg.TTS.VoiceName)
	}
	if cfg.Transcriber.TranscriberName != "deepgram_nova_3" {
		t.Errorf("TranscriberName = %q", cfg.Transcriber.TranscriberName)
	}
	if cfg.VAD.VADProviderName == "" {
		t.Error("VADProviderName not annotated")
	}
}

func TestAgentUpdate_BackfillsNameAndModel(t *testing.T) {
	current := fmt.Sprintf(`{
		"id": "agent-1",
		"agent": {"name": "Existing", "is_active": true},
		"configurations": {"model": {"model_provider_id": %q}}
	}`, LLMModels["gpt-4.1"])

	c, captured := newAgentTestServer(t, map[string]string{"GET /agents/agent-1": current})

	temp := 0.3
	_, err := c.Agents.Update(context.Background(), "agent-1", UpdateAgentParams{Temperature: &temp})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var put *capturedRequest
	for i := range *captured {
		if (*captured)[i].method == "PUT" {
			put = &(*captured)[i]
		}
	}
	if put == nil {
		t.Fatal("no PUT request captured")
	}
	if got := dig(put.body, "agent_model_config", "model_provider_id"); got != LLMModels["gpt-4.1"] {
		t.Errorf("model_provider_id not backfilled, got %v", got)
	}
	if got := dig(put.body, "agent_model_config", "temperature"); got != 0.3 {
		t.Errorf("temperature = %v", got)
	}
	if got := put.query["force_update"]; got != "true" {
		t.Errorf("force_update = %q, want true by default", got)
	}
}

func TestAgentUpdate_NoModelAnywhereFails(t *testing.T) {
	// Current agent has no model section, so a partial model update cannot
	// be completed.
	c, _ := newAgentTestServer(t, map[string]string{
		"GET /agents/agent-1": `{"id": "agent-1", "agent": {"name": "Bot"}}`,
	})

	temp := 0.5
	_, err := c.Agents.Update(context.Background(), "agent-1", UpdateAgentParams{Temperature: &temp})
	if err == nil {
		t.Fatal("expected error when no model is resolvable")
	}
}

func TestAgentDelete_ForceFlag(t *testing.T) {
	c, captured := newAgentTestServer(t, map[string]string{
		"DELETE /agents/agent-1": `{"success": true, "message": "deleted"}`,
	})

	res, err := c.Agents.Delete(context.Background(), "agent-1", true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !res.Success || res.Message != "deleted" {
		t.Errorf("result = %+v", res)
	}
	if got := (*captured)[0].query["force_delete"]; got != "true" {
		t.Errorf("force_delete = %q", got)
	}

	if _, err := c.Agents.Delete(context.Background(), "agent-1", false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := (*captured)[1].query["force_delete"]; got != "false" {
		t.Errorf("force_delete = %q, want false", got)
	}
}

func TestCallsCreate(t *testing.T) {
	c, captured := newAgentTestServer(t, map[string]string{
		"POST /calls": `{"status": "initiated", "message": "Call started", "call_sid": "CA123"}`,
	})

	res, err := c.Calls.Create(context.Background(), "+15550100", "agent-1")
	if err != nil {
		t.Fatalf("create call: %v", err)
	}
	if res.CallSID != "CA123" || res.Status != "initiated" {
		t.Errorf("result = %+v", res)
	}
	cr := (*captured)[0]
	if cr.query["phoneNumber"] != "+15550100" || cr.query["agent_id"] != "agent-1" {
		t.Errorf("query = %v", cr.query)
	}
}

func TestCallsConference(t *testing.T) {
	c, captured := newAgentTestServer(t, map[string]string{
		"POST /calls/conference": `{"status": "initiated", "message": "Conference started"}`,
	})

	_, err := c.Calls.Conference(context.Background(), []string{"+15550100", "+15550101"}, "standup")
	if err != nil {
		t.Fatalf("conference: %v", err)
	}
	cr := (*captured)[0]
	if cr.path != "/calls/conference" {
		t.Errorf("path = %q", cr.path)
	}
	if got := cr.body["conference_name"]; got != "standup" {
		t.Errorf("conference_name = %v", got)
	}
	nums, _ := cr.body["to_numbers"].([]any)
	if len(nums) != 2 {
		t.Errorf("to_numbers = %v", cr.body["to_numbers"])
	}
}

func TestCallsStop(t *testing.T) {
	c, captured := newAgentTestServer(t, map[string]string{
		"POST /calls/CA123/stop": `{"status": "stopped", "message": "Call ended"}`,
	})

	res, err := c.Calls.Stop(context.Background(), "CA123")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if res.Status != "stopped" {
		t.Errorf("status = %q", res.Status)
	}
	if got := (*captured)[0].path; got != "/calls/CA123/stop" {
		t.Errorf("path = %q", got)
	}
}
