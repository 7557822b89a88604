package pranthora

// Friendly-name tables for providers, models and voices. The backend speaks
// in opaque IDs; the SDK accepts human names and resolves them, and annotates
// responses with the reverse lookup.

// TTSProviders maps TTS provider names to backend IDs.
var TTSProviders = map[string]string{
	"eleven_labs": "13ad1a5f-f2cf-46fe-be29-3ef0f9a3d211",
	"cartesia":    "3889f8c4-039f-4f28-9b3a-67d4be8ada40",
	"deepgram":    "75880080-722d-40fb-9e49-b379f68a89b2",
	"inworld":     "bd248e98-da0d-4d30-b2df-99021e4821de",
	"azure":       "ef36e21c-5cb5-4d2d-a55b-7b5a80ae5f64",
}

// STTConfig describes a transcriber preset: the provider ID plus the model
// and language the backend requires alongside it.
type STTConfig struct {
	ID       string
	Model    string
	Language string
}

// STTConfigs maps transcriber names to presets.
var STTConfigs = map[string]STTConfig{
	"cartesia":        {ID: "5add9b5d-cbd0-4e0a-886b-2eecb0bf1b10", Model: "ink-whisper", Language: "en"},
	"deepgram_flux":   {ID: "63f5e32a-c163-4a4f-8000-e8a996abb183", Model: "flux-general-en", Language: "en"},
	"soniox":          {ID: "9f653d3b-2c9d-4c9a-9c58-e1a50b81b7dd", Model: "stt-rt-preview-v2", Language: "en"},
	"faster_whisper":  {ID: "a92491c1-e177-43a1-84dc-08dd3e7309b7", Model: "faster_whisper", Language: "en"},
	"sarvam":          {ID: "b9d43de9-1728-4a43-ac2c-c4f97f0beffe", Model: "saarika:v2.5", Language: "en-IN"},
	"assembly_ai":     {ID: "ce6aeefc-fe9b-4710-b16d-907ffca8e2b9", Model: "universal", Language: "en"},
	"deepgram_nova_3": {ID: "d8606a97-63c1-416e-83fa-720bb98c69e1", Model: "nova-3", Language: "en"},
}

// LLMModels maps model names to model provider IDs.
var LLMModels = map[string]string{
	// Azure
	"gpt-oss-120b": "19e29673-0885-4a78-9021-372da3647fc2",
	"gpt-4.1":      "186b748d-e3a2-49bc-8a4a-53fe66208e4c",
	"model-router": "813c7c9a-fed1-4630-9150-f0ac0c15ef8d",
	"gpt-4.1-mini": "8b1a0f2c-bdc8-4f36-a114-aa2638be43d0",

	// DeepInfra
	"mistral-small":          "d66a9798-5aab-41a0-b944-ca33a4046c2e",
	"llama-3.3-70b":          "608bc6d2-ea00-4cd8-a511-cc6f2aa3d5c2",
	"qwen-14b":               "50ef990e-ca6b-42ca-a5d1-4a48f2e42b8b",
	"hermes-3-70b":           "7bc7813e-3c5e-4aa1-adec-2c0694d79269",
	"glm-4.5":                "571ec61c-5998-4c50-95fc-f32fe3020434",
	"deepinfra-gpt-oss-120b": "7c4322da-5b40-485a-878f-c7f450233473",
	"llama-4-scout":          "449c577d-92f1-493a-a99a-e469029b7117",
	"kimi-k2":                "9031cf36-95d2-4946-9da8-cd015a1391d0",

	// Fireworks
	"fireworks-gpt-oss-120b": "be9b6fec-45ba-479c-9c1d-a48b85068c48",
	"deepseek-v3":            "02ca1ec7-674f-45d3-9f89-20a1ea571852",

	// Gemini
	"gemini-2.5-flash-lite": "3793b663-01d1-4dc3-a4b3-4fb10b1ccaac",
	"gemini-2.5-flash":      "cfee3ffc-b806-4ea0-bd20-6fe6f24ab9d8",
	"gemini-2.0-flash":      "89e55bca-3e17-4eae-a9ec-6cbc2a6c275b",

	// Groq
	"groq-qwen-32b":      "3988e495-744d-4331-aede-06193c5157e8",
	"groq-llama-3.3-70b": "2daa90f6-c0ac-4a90-abfd-d4b5e0390989",
	"groq-gpt-oss-20b":   "d7b3a48c-8bbf-4d13-ab32-067e49d9eda5",
	"groq-compound":      "3aee8cef-f02d-4732-9c96-21092b8bc972",
	"groq-gpt-oss-120b":  "56e7ece1-91e9-498c-8925-de558e48e524",

	// OpenAI
	"openai-gpt-4.1-nano": "a0570122-69d3-427a-89ae-73839825c123",
	"openai-gpt-4.1":      "b3714a39-3689-4b15-b15f-3f51af9dfad4",
	"openai-gpt-4.1-mini": "223f117d-90d3-4598-ae6b-8f1c49ae6266",
}

// Voice describes a named voice and the TTS provider that hosts it.
type Voice struct {
	ID       string
	Provider string
}

// Voices maps voice names to voice IDs and providers.
var Voices = map[string]Voice{
	// Cartesia
	"darla":    {ID: "996a8b96-4804-46f0-8e05-3fd4ef1a87cd", Provider: "cartesia"},
	"jacqline": {ID: "9626c31c-bec5-4cca-baa8-f8ba9e84c8bc", Provider: "cartesia"},
	"priya":    {ID: "f6141af3-5f94-418c-80ed-a45d450e7e2e", Provider: "cartesia"},
	"carolina": {ID: "f9836c6e-a0bd-460e-9d3c-f7299fa60f94", Provider: "cartesia"},
	"blake":    {ID: "a167e0f3-df7e-4d52-a9c3-f949145efdab", Provider: "cartesia"},
	"ronald":   {ID: "5ee9feff-1265-424a-9d7f-8e4d431a12c7", Provider: "cartesia"},
	"jake":     {ID: "729651dc-c6c3-4ee5-97fa-350da1f88600", Provider: "cartesia"},

	// Deepgram
	"thalia":    {ID: "aura-2-thalia-en", Provider: "deepgram"},
	"aries":     {ID: "aura-2-aries-en", Provider: "deepgram"},
	"apollo":    {ID: "aura-2-apollo-en", Provider: "deepgram"},
	"andromeda": {ID: "aura-2-andromeda-en", Provider: "deepgram"},
	"asteria":   {ID: "aura-2-asteria-en", Provider: "deepgram"},
}

// VADProviders maps VAD provider names to backend IDs.
var VADProviders = map[string]string{
	"default": "c284bf92-658b-4d1b-a2ff-0cba0892fd29",
	"silero":  "c284bf92-658b-4d1b-a2ff-0cba0892fd29",
}

var (
	ttsProvidersReverse = reverse(TTSProviders)
	llmModelsReverse    = reverse(LLMModels)
	vadProvidersReverse = reverse(VADProviders)

	sttConfigsReverse = func() map[string]string {
		m := make(map[string]string, len(STTConfigs))
		for name, cfg := range STTConfigs {
			m[cfg.ID] = name
		}
		return m
	}()

	voicesReverse = func() map[string]string {
		m := make(map[string]string, len(Voices))
		for name, v := range Voices {
			m[v.ID] = name
		}
		return m
	}()
)

func reverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// TTSProviderName converts a TTS provider ID to its friendly name, returning
// the ID unchanged when unknown. All the *Name helpers behave this way.
func TTSProviderName(id string) string { return lookupOr(ttsProvidersReverse, id) }

// ModelName converts a model provider ID to its friendly name.
func ModelName(id string) string { return lookupOr(llmModelsReverse, id) }

// TranscriberName converts a transcriber provider ID to its friendly name.
func TranscriberName(id string) string { return lookupOr(sttConfigsReverse, id) }

// VoiceName converts a voice ID to its friendly name.
func VoiceName(id string) string { return lookupOr(voicesReverse, id) }

// VADProviderName converts a VAD provider ID to its friendly name.
func VADProviderName(id string) string { return lookupOr(vadProvidersReverse, id) }

func lookupOr(m map[string]string, id string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return id
}
