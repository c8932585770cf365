package models

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.GreetingPrefix != "Hi" {
		t.Errorf("GreetingPrefix = %q, want 'Hi'", c.GreetingPrefix)
	}
	if c.OutputFormat != "mp4" {
		t.Errorf("OutputFormat = %q, want 'mp4'", c.OutputFormat)
	}
	if c.VoiceoverLevel != 0 || c.SpeechLevel != 0 {
		t.Error("voiceover and speech levels should default to 0 (factor 1.0)")
	}
	if c.MusicLevel >= 0 {
		t.Errorf("MusicLevel = %v, should default below 0", c.MusicLevel)
	}
	if !c.NormalizeUploads {
		t.Error("NormalizeUploads should default to true")
	}
	if c.DefaultVoiceID == "" {
		t.Error("DefaultVoiceID should not be empty")
	}
}

func TestConfig_APIKeyForVoice(t *testing.T) {
	c := DefaultConfig()
	c.Voices = []Voice{
		{ID: "voice-a", Name: "A", Account: ""},
		{ID: "voice-b", Name: "B", Account: "second"},
	}
	c.APIKeys = map[string]string{
		"":       "default-key",
		"second": "second-key",
	}

	if got := c.APIKeyForVoice("voice-a"); got != "default-key" {
		t.Errorf("APIKeyForVoice(voice-a) = %q, want 'default-key'", got)
	}
	if got := c.APIKeyForVoice("voice-b"); got != "second-key" {
		t.Errorf("APIKeyForVoice(voice-b) = %q, want 'second-key'", got)
	}
	// Unknown voice falls back to the default account
	if got := c.APIKeyForVoice("voice-x"); got != "default-key" {
		t.Errorf("APIKeyForVoice(voice-x) = %q, want 'default-key'", got)
	}
}

func TestConfig_APIKeyForVoice_EmptyAccountKey(t *testing.T) {
	c := DefaultConfig()
	c.Voices = []Voice{{ID: "voice-b", Name: "B", Account: "second"}}
	c.APIKeys = map[string]string{"": "default-key"}

	// Account without a key falls back to the default
	if got := c.APIKeyForVoice("voice-b"); got != "default-key" {
		t.Errorf("APIKeyForVoice(voice-b) = %q, want 'default-key'", got)
	}
}

func TestConfig_VoiceNames(t *testing.T) {
	c := DefaultConfig()
	c.Voices = []Voice{
		{ID: "a", Name: "Barbara"},
		{ID: "b", Name: "Frank"},
	}
	names := c.VoiceNames()
	if len(names) != 2 || names[0] != "Barbara" || names[1] != "Frank" {
		t.Errorf("VoiceNames() = %v", names)
	}
}

func TestConfig_VoiceIDByName(t *testing.T) {
	c := DefaultConfig()
	c.DefaultVoiceID = "a"
	c.Voices = []Voice{
		{ID: "a", Name: "Barbara"},
		{ID: "b", Name: "Frank"},
	}
	if got := c.VoiceIDByName("Frank"); got != "b" {
		t.Errorf("VoiceIDByName(Frank) = %q, want 'b'", got)
	}
	if got := c.VoiceIDByName("Nobody"); got != "a" {
		t.Errorf("VoiceIDByName(Nobody) = %q, want default 'a'", got)
	}
}
