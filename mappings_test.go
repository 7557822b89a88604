package pranthora

import "testing"

func TestReverseLookups(t *testing.T) {
	if got := ModelName(LLMModels["gpt-4.1-mini"]); got != "gpt-4.1-mini" {
		t.Errorf("ModelName = %q", got)
	}
	if got := TTSProviderName(TTSProviders["cartesia"]); got != "cartesia" {
		t.Errorf("TTSProviderName = %q", got)
	}
	if got := VoiceName(Voices["thalia"].ID); got != "thalia" {
		t.Errorf("VoiceName = %q", got)
	}
	if got := TranscriberName(STTConfigs["soniox"].ID); got != "soniox" {
		t.Errorf("TranscriberName = %q", got)
	}
}

func TestReverseLookups_UnknownFallsThrough(t *testing.T) {
	if got := ModelName("not-a-known-id"); got != "not-a-known-id" {
		t.Errorf("unknown model ID must fall through, got %q", got)
	}
	if got := VoiceName("custom-voice"); got != "custom-voice" {
		t.Errorf("unknown voice ID must fall through, got %q", got)
	}
}

func TestVoices_ProvidersExist(t *testing.T) {
	for name, v := range Voices {
		if _, ok := TTSProviders[v.Provider]; !ok {
			t.Errorf("voice %q references unknown provider %q", name, v.Provider)
		}
	}
}

func TestVADProviders_SiloAliasesDefault(t *testing.T) {
	if VADProviders["silero"] != VADProviders["default"] {
		t.Error("silero and default must resolve to the same provider")
	}
}
