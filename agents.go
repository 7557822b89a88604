package pranthora

import (
	"context"
	"net/url"
)

// AgentService manages voice-agent resources.
type AgentService struct {
	r *requestor
}

// CreateAgentParams configures a new agent. Model, Voice, Transcriber and
// VADProvider accept friendly names from the mapping tables; unrecognized
// values are passed through as raw IDs so callers can use IDs directly.
type CreateAgentParams struct {
	Name        string
	Description string
	IsActive    *bool // defaults to true

	// Model configuration.
	Model        string // default "gpt-4.1-mini"
	Temperature  float64
	SystemPrompt string
	MaxTokens    int
	ToolPrompt   string

	// Speech configuration.
	Voice       string // default "thalia"
	Transcriber string // default "deepgram_nova_3"
	VADProvider string // default "default"

	// Optional agent flags.
	ApplyNoiseReduction  bool
	RecordingEnabled     bool
	TTSFillerEnabled     *bool
	FirstResponseMessage string

	// VAD tuning.
	VADThreshold         *float64
	MinSpeechDurationMS  *float64
	MinSilenceDurationMS *float64

	Tools []ToolConfig
}

// UpdateAgentParams updates an existing agent. Nil fields are left
// unchanged.
type UpdateAgentParams struct {
	Name         *string
	Description  *string
	IsActive     *bool
	Model        *string
	Temperature  *float64
	SystemPrompt *string
	Voice        *string
	Transcriber  *string
	VADProvider  *string
	Tools        []ToolConfig

	// ForceUpdate allows updating active agents. Defaults to true, matching
	// the backend's SDK controller.
	ForceUpdate *bool
}

// Create provisions a complete agent with model, TTS, transcriber and VAD
// configuration, then returns it with friendly names annotated.
func (s *AgentService) Create(ctx context.Context, p CreateAgentParams) (*Agent, error) {
	if p.Model == "" {
		p.Model = "gpt-4.1-mini"
	}
	if p.Voice == "" {
		p.Voice = "thalia"
	}
	if p.Transcriber == "" {
		p.Transcriber = "deepgram_nova_3"
	}
	if p.VADProvider == "" {
		p.VADProvider = "default"
	}
	if p.Temperature == 0 {
		p.Temperature = 0.7
	}
	if p.SystemPrompt == "" {
		p.SystemPrompt = "You are a helpful assistant."
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = 150
	}
	if p.ToolPrompt == "" {
		p.ToolPrompt = "Use tools when appropriate."
	}
	if p.Description == "" {
		p.Description = "Agent using " + p.Model
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	voiceID, ttsProviderID := resolveVoice(p.Voice)
	stt := resolveTranscriber(p.Transcriber)

	req := createAgentRequest{
		Agent: AgentCore{
			Name:                 p.Name,
			Description:          Ptr(p.Description),
			IsActive:             active,
			ApplyNoiseReduction:  p.ApplyNoiseReduction,
			RecordingEnabled:     p.RecordingEnabled,
			TTSFillerEnabled:     p.TTSFillerEnabled,
			FirstResponseMessage: optString(p.FirstResponseMessage),
		},
		AgentModelConfig: &ModelConfig{
			ModelProviderID: resolveModel(p.Model),
			Temperature:     Ptr(p.Temperature),
			SystemPrompt:    Ptr(p.SystemPrompt),
			MaxTokens:       Ptr(p.MaxTokens),
			ToolPrompt:      Ptr(p.ToolPrompt),
		},
		TTSConfig: &TTSConfig{
			TTSProviderID: ttsProviderID,
			VoiceName:     Ptr(voiceID),
			VoiceParameters: map[string]any{
				"speed": 1.0, "pitch": 1.0, "volume": 1.0,
			},
		},
		TranscriberConfig: &TranscriberConfig{
			ProviderID: stt.ID,
			ModelName:  stt.Model,
			Language:   stt.Language,
		},
		VADConfig: &VADConfig{
			VADProviderID:        resolveVAD(p.VADProvider),
			Threshold:            orDefault(p.VADThreshold, 0.5),
			MinSpeechDurationMS:  orDefault(p.MinSpeechDurationMS, 250.0),
			MinSilenceDurationMS: orDefault(p.MinSilenceDurationMS, 500.0),
		},
		InferencingConfig: &InferencingConfig{VAD: true, STT: true, LLM: true, TTS: true},
		Tools:             p.Tools,
	}

	var out Agent
	if err := s.r.do(ctx, "POST", "/agents", nil, req, &out); err != nil {
		return nil, err
	}
	annotateAgent(&out)
	return &out, nil
}

// List returns all agents for the current account.
func (s *AgentService) List(ctx context.Context) ([]Agent, error) {
	var out []Agent
	if err := s.r.do(ctx, "GET", "/agents", nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		annotateAgent(&out[i])
	}
	return out, nil
}

// Get returns one agent by ID.
func (s *AgentService) Get(ctx context.Context, agentID string) (*Agent, error) {
	var out Agent
	if err := s.r.do(ctx, "GET", "/agents/"+agentID, nil, nil, &out); err != nil {
		return nil, err
	}
	annotateAgent(&out)
	return &out, nil
}

// Update applies a partial update. The backend requires the agent name
// whenever the agent section is present and a model_provider_id whenever the
// model section is present, so those are backfilled from the current agent
// when the caller changes only part of a section.
func (s *AgentService) Update(ctx context.Context, agentID string, p UpdateAgentParams) (*Agent, error) {
	var req updateAgentRequest
	var current *Agent

	fetch := func() *Agent {
		if current == nil {
			current, _ = s.Get(ctx, agentID)
		}
		return current
	}

	if p.Name != nil || p.Description != nil || p.IsActive != nil {
		core := AgentCore{}
		if p.Name != nil {
			core.Name = *p.Name
		} else if cur := fetch(); cur != nil {
			core.Name = cur.Agent.Name
		}
		core.Description = p.Description
		core.IsActive = true
		if p.IsActive != nil {
			core.IsActive = *p.IsActive
		} else if cur := fetch(); cur != nil {
			core.IsActive = cur.Agent.IsActive
		}
		req.Agent = &core
	}

	if p.Model != nil || p.Temperature != nil || p.SystemPrompt != nil {
		mc := ModelConfig{Temperature: p.Temperature, SystemPrompt: p.SystemPrompt}
		if p.Model != nil {
			mc.ModelProviderID = resolveModel(*p.Model)
		} else if cur := fetch(); cur != nil && cur.Configurations != nil && cur.Configurations.Model != nil {
			mc.ModelProviderID = cur.Configurations.Model.ModelProviderID
		}
		if mc.ModelProviderID == "" {
			return nil, NewConfigError("Model", "", "cannot update model configuration without a model; the agent has no existing model_provider_id")
		}
		req.AgentModelConfig = &mc
	}

	if p.Voice != nil {
		voiceID, ttsProviderID := resolveVoice(*p.Voice)
		req.TTSConfig = &TTSConfig{TTSProviderID: ttsProviderID, VoiceName: Ptr(voiceID)}
	}

	if p.Transcriber != nil {
		stt := resolveTranscriber(*p.Transcriber)
		req.TranscriberConfig = &TranscriberConfig{
			ProviderID: stt.ID,
			ModelName:  stt.Model,
			Language:   stt.Language,
		}
	}

	if p.VADProvider != nil {
		req.VADConfig = &VADConfig{VADProviderID: resolveVAD(*p.VADProvider)}
	}

	req.Tools = p.Tools

	params := url.Values{}
	if p.ForceUpdate == nil || *p.ForceUpdate {
		params.Set("force_update", "true")
	}

	var out Agent
	if err := s.r.do(ctx, "PUT", "/agents/"+agentID, params, req, &out); err != nil {
		return nil, err
	}
	annotateAgent(&out)
	return &out, nil
}

// Delete removes an agent. force allows deleting active agents.
func (s *AgentService) Delete(ctx context.Context, agentID string, force bool) (*DeleteResult, error) {
	params := url.Values{}
	if force {
		params.Set("force_delete", "true")
	} else {
		params.Set("force_delete", "false")
	}
	var out DeleteResult
	if err := s.r.do(ctx, "DELETE", "/agents/"+agentID, params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Name resolution helpers. Unknown names fall through as raw IDs.

func resolveModel(name string) string {
	if id, ok := LLMModels[name]; ok {
		return id
	}
	return name
}

func resolveVoice(name string) (voiceID, ttsProviderID string) {
	if v, ok := Voices[name]; ok {
		return v.ID, TTSProviders[v.Provider]
	}
	return name, TTSProviders["deepgram"]
}

func resolveTranscriber(name string) STTConfig {
	if cfg, ok := STTConfigs[name]; ok {
		return cfg
	}
	return STTConfig{ID: name, Model: "nova-3", Language: "en"}
}

func resolveVAD(name string) string {
	if id, ok := VADProviders[name]; ok {
		return id
	}
	return VADProviders["default"]
}

// annotateAgent fills the friendly-name fields from the reverse mapping
// tables, preserving the raw IDs.
func annotateAgent(a *Agent) {
	if a == nil || a.Configurations == nil {
		return
	}
	c := a.Configurations
	if c.Model != nil {
		c.Model.ModelName = ModelName(c.Model.ModelProviderID)
	}
	if c.TTS != nil {
		c.TTS.TTSProviderName = TTSProviderName(c.TTS.TTSProviderID)
		c.TTS.VoiceName = VoiceName(c.TTS.VoiceID)
	}
	if c.Transcriber != nil {
		c.Transcriber.TranscriberName = TranscriberName(c.Transcriber.ProviderID)
	}
	if c.VAD != nil {
		c.VAD.VADProviderName = VADProviderName(c.VAD.VADProviderID)
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(p *float64, def float64) *float64 {
	if p != nil {
		return p
	}
	return &def
}
