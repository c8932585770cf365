package models

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"greeting-studio/internal/config"
)

// Voice describes a selectable synthesis voice and the account it
// belongs to. The API key is resolved through the account name so one
// config can hold voices from several ElevenLabs accounts.
type Voice struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Account string `json:"account"`
}

// Config holds application settings
type Config struct {
	// Greeting template wrapped around each recipient name
	GreetingPrefix string `json:"greeting_prefix"`
	GreetingSuffix string `json:"greeting_suffix"`

	// Slider levels; a linear gain factor of 10^(level/20) is applied per track
	VoiceoverLevel float64 `json:"voiceover_level"`
	SpeechLevel    float64 `json:"speech_level"`
	MusicLevel     float64 `json:"music_level"`

	// Seconds trimmed from the start of the source voiceover
	ClipStart float64 `json:"clip_start"`

	// Output container format (mp4, avi)
	OutputFormat string `json:"output_format"`

	// Voice selection and account credentials. Keys of APIKeys are
	// account names referenced by Voice.Account; the empty account name
	// maps to the default key.
	DefaultVoiceID string            `json:"default_voice_id"`
	Voices         []Voice           `json:"voices"`
	APIKeys        map[string]string `json:"api_keys"`

	// Tool paths
	FFmpegPath string `json:"ffmpeg_path"`

	// Whether raw uploads are re-encoded to a known-good profile first
	NormalizeUploads bool `json:"normalize_uploads"`

	OutputDirectory string `json:"output_directory"`
}

func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		GreetingPrefix: config.DefaultGreetingPrefix,
		GreetingSuffix: config.DefaultGreetingSuffix,

		VoiceoverLevel: config.DefaultVoiceoverLevel,
		SpeechLevel:    config.DefaultSpeechLevel,
		MusicLevel:     config.DefaultMusicLevel,

		ClipStart:    1.0,
		OutputFormat: "mp4",

		DefaultVoiceID: "Ro4VVDudw85O3XfD3nva",
		Voices: []Voice{
			{ID: "Ro4VVDudw85O3XfD3nva", Name: "Barbara", Account: ""},
		},
		APIKeys: map[string]string{},

		FFmpegPath:       "",
		NormalizeUploads: true,

		OutputDirectory: filepath.Join(homeDir, "Desktop", "Greetings"),
	}
}

func (c *Config) ConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "greeting-studio", "config.json")
}

// LoadConfig reads the persisted config, falling back to defaults when
// none exists, then applies environment overrides. A .env file in the
// working directory is honored so API keys never need to live in the
// saved config.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(cfg.ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.APIKeys == nil {
		c.APIKeys = map[string]string{}
	}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		c.APIKeys[""] = key
	}
}

// APIKeyForVoice resolves the credential bound to a voice ID. Unknown
// voices fall back to the default account key.
func (c *Config) APIKeyForVoice(voiceID string) string {
	for _, v := range c.Voices {
		if v.ID == voiceID {
			if key, ok := c.APIKeys[v.Account]; ok && key != "" {
				return key
			}
			break
		}
	}
	return c.APIKeys[""]
}

// VoiceNames returns display names for the voice selector, in config order.
func (c *Config) VoiceNames() []string {
	names := make([]string, len(c.Voices))
	for i, v := range c.Voices {
		names[i] = v.Name
	}
	return names
}

// VoiceIDByName maps a display name back to a voice ID. Returns the
// default voice when the name is unknown.
func (c *Config) VoiceIDByName(name string) string {
	for _, v := range c.Voices {
		if v.Name == name {
			return v.ID
		}
	}
	return c.DefaultVoiceID
}

func (c *Config) Save() error {
	configPath := c.ConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600) // User-only permissions, holds API keys
}
