package pranthora

// REST schema types mirroring the backend agent and call resources.

// AgentCore holds the top-level agent fields.
type AgentCore struct {
	Name                 string  `json:"name"`
	Description          *string `json:"description,omitempty"`
	IsActive             bool    `json:"is_active"`
	ApplyNoiseReduction  bool    `json:"apply_noise_reduction"`
	RecordingEnabled     bool    `json:"recording_enabled"`
	TTSFillerEnabled     *bool   `json:"tts_filler_enabled,omitempty"`
	FirstResponseMessage *string `json:"first_response_message,omitempty"`
}

// ModelConfig configures the agent's language model.
type ModelConfig struct {
	ModelProviderID string         `json:"model_provider_id"`
	Temperature     *float64       `json:"temperature,omitempty"`
	MaxTokens       *int           `json:"max_tokens,omitempty"`
	SystemPrompt    *string        `json:"system_prompt,omitempty"`
	ToolPrompt      *string        `json:"tool_prompt,omitempty"`
	OtherParams     map[string]any `json:"other_params,omitempty"`
}

// TTSConfig configures speech synthesis.
type TTSConfig struct {
	TTSProviderID   string         `json:"tts_provider_id"`
	VoiceName       *string        `json:"voice_name,omitempty"`
	VoiceParameters map[string]any `json:"voice_parameters,omitempty"`
}

// TranscriberConfig configures speech recognition.
type TranscriberConfig struct {
	ProviderID    string         `json:"provider_id"`
	ModelName     string         `json:"model_name"`
	Language      string         `json:"language"`
	InitialPrompt *string        `json:"initial_prompt,omitempty"`
	OtherParams   map[string]any `json:"other_params,omitempty"`
}

// VADConfig configures voice activity detection.
type VADConfig struct {
	VADProviderID             string   `json:"vad_provider_id"`
	Threshold                 *float64 `json:"threshold,omitempty"`
	MinSpeechDurationMS       *float64 `json:"min_speech_duration_ms,omitempty"`
	MinSilenceDurationMS      *float64 `json:"min_silence_duration_ms,omitempty"`
	MaxAllowedSilenceDuration *float64 `json:"max_allowed_silence_duration,omitempty"`
	SamplingRate              *float64 `json:"sampling_rate,omitempty"`
}

// InferencingConfig toggles pipeline stages.
type InferencingConfig struct {
	VAD bool `json:"vad"`
	STT bool `json:"stt"`
	LLM bool `json:"llm"`
	TTS bool `json:"tts"`
}

// ToolConfig attaches a tool to an agent.
type ToolConfig struct {
	ToolType        string         `json:"tool_type"`
	ToolID          string         `json:"tool_id"`
	ConfigOverrides map[string]any `json:"config_overrides,omitempty"`
}

// createAgentRequest is the POST /agents payload shape.
type createAgentRequest struct {
	Agent             AgentCore          `json:"agent"`
	AgentModelConfig  *ModelConfig       `json:"agent_model_config,omitempty"`
	TTSConfig         *TTSConfig         `json:"tts_config,omitempty"`
	TranscriberConfig *TranscriberConfig `json:"transcriber_config,omitempty"`
	VADConfig         *VADConfig         `json:"vad_config,omitempty"`
	InferencingConfig *InferencingConfig `json:"inferencing_config,omitempty"`
	Tools             []ToolConfig       `json:"tools,omitempty"`
}

// updateAgentRequest is the PUT /agents/{id} payload shape. All sections are
// optional; only the ones being changed are sent.
type updateAgentRequest struct {
	Agent             *AgentCore         `json:"agent,omitempty"`
	AgentModelConfig  *ModelConfig       `json:"agent_model_config,omitempty"`
	TTSConfig         *TTSConfig         `json:"tts_config,omitempty"`
	TranscriberConfig *TranscriberConfig `json:"transcriber_config,omitempty"`
	VADConfig         *VADConfig         `json:"vad_config,omitempty"`
	Tools             []ToolConfig       `json:"tools,omitempty"`
}

// ModelInfo is the model section of an agent response. Name fields suffixed
// "Name" are annotated client-side from the mapping tables and are not part
// of the wire payload.
type ModelInfo struct {
	ModelProviderID string  `json:"model_provider_id"`
	Temperature     float64 `json:"temperature,omitempty"`
	MaxTokens       int     `json:"max_tokens,omitempty"`
	SystemPrompt    string  `json:"system_prompt,omitempty"`
	ModelName       string  `json:"model_name,omitempty"`
}

// TTSInfo is the TTS section of an agent response.
type TTSInfo struct {
	TTSProviderID   string         `json:"tts_provider_id"`
	VoiceID         string         `json:"voice_name"`
	VoiceParameters map[string]any `json:"voice_parameters,omitempty"`
	TTSProviderName string         `json:"tts_provider_name,omitempty"`
	VoiceName       string         `json:"voice_name_friendly,omitempty"`
}

// TranscriberInfo is the transcriber section of an agent response.
type TranscriberInfo struct {
	ProviderID      string `json:"provider_id"`
	ModelName       string `json:"model_name,omitempty"`
	Language        string `json:"language,omitempty"`
	TranscriberName string `json:"transcriber_name,omitempty"`
}

// VADInfo is the VAD section of an agent response.
type VADInfo struct {
	VADProviderID        string  `json:"vad_provider_id"`
	Threshold            float64 `json:"threshold,omitempty"`
	MinSpeechDurationMS  float64 `json:"min_speech_duration_ms,omitempty"`
	MinSilenceDurationMS float64 `json:"min_silence_duration_ms,omitempty"`
	VADProviderName      string  `json:"vad_provider_name,omitempty"`
}

// AgentConfigurations groups the per-stage configuration of an agent
// response.
type AgentConfigurations struct {
	Model       *ModelInfo       `json:"model,omitempty"`
	TTS         *TTSInfo         `json:"tts,omitempty"`
	Transcriber *TranscriberInfo `json:"transcriber,omitempty"`
	VAD         *VADInfo         `json:"vad,omitempty"`
}

// Agent is a complete agent as returned by the API.
type Agent struct {
	ID             string               `json:"id,omitempty"`
	Agent          AgentCore            `json:"agent"`
	Configurations *AgentConfigurations `json:"configurations,omitempty"`
	Tools          []ToolConfig         `json:"tools,omitempty"`
}

// DeleteResult is the response to a delete request.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreateCallResponse is returned when initiating an outbound call.
type CreateCallResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	CallSID string `json:"call_sid,omitempty"`
}
