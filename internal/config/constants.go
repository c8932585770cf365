// Package config provides centralized configuration and constants for greeting-studio.
package config

import "time"

// Progress stage boundaries (0-100%)
const (
	ProgressCollectStart    = 0
	ProgressCollectEnd      = 10
	ProgressSynthesizeStart = 10
	ProgressSynthesizeEnd   = 40
	ProgressComposeStart    = 40
	ProgressComposeEnd      = 65
	ProgressRenderStart     = 65
	ProgressRenderEnd       = 90
	ProgressPackageStart    = 90
	ProgressPackageEnd      = 100
)

// ElevenLabsAPIBase is the synthesis service root. Paths are appended
// by the client so tests can point it at a local server.
const ElevenLabsAPIBase = "https://api.elevenlabs.io"

// Synthesis profile. Model, output encoding, and prosody are fixed for
// every run; only the voice and credential vary.
const (
	SynthesisModel        = "eleven_multilingual_v2"
	SynthesisOutputFormat = "mp3_22050_32"

	VoiceStability       = 0.6
	VoiceSimilarityBoost = 0.9
	VoiceStyle           = 0.1
	VoiceSpeakerBoost    = true
)

// Default greeting template, reproducing "Hi <name>!".
const (
	DefaultGreetingPrefix = "Hi"
	DefaultGreetingSuffix = "!"
)

// IntroSilence is the fixed pause inserted before the personalized
// greeting on every composed track.
const IntroSilence = 2 * time.Second

// Default slider levels. Level 0 maps to a gain factor of 1.0; music
// defaults to -26, close to the 0.05 linear factor the tool shipped with.
const (
	DefaultVoiceoverLevel = 0.0
	DefaultSpeechLevel    = 0.0
	DefaultMusicLevel     = -26.0
)

// Upload normalization profile. Raw uploads are re-encoded to a
// known-good codec/bitrate before any per-recipient work.
const (
	NormalizeVideoCodec   = "libx264"
	NormalizeAudioCodec   = "aac"
	NormalizeVideoBitrate = "2000k"
)

// MP4 output profile
const (
	MP4VideoCodec = "libx264"
	MP4AudioCodec = "aac"
)

// AVI output profile. The odd frame rate and size come from the legacy
// playback target these files are produced for.
const (
	AVIVideoCodec   = "mjpeg"
	AVIAudioCodec   = "adpcm_ima_wav"
	AVIVideoBitrate = "1976k"
	AVIAudioBitrate = "88k"
	AVIResolution   = "320x240"
	AVIFrameRate    = "21.68"
	AVISampleRate   = "22050"
	AVIChannels     = "1"
)

// Composed-track intermediate encoding
const (
	ComposeSampleRate = 44100
	ComposeChannels   = 2
)

// Retry settings
const (
	DefaultMaxRetries     = 3
	DefaultRetryDelayBase = time.Second
)

// HTTP client settings
const (
	HTTPTimeout             = 2 * time.Minute
	HTTPMaxIdleConns        = 10
	HTTPMaxIdleConnsPerHost = 10
	HTTPIdleConnTimeout     = 90 * time.Second
)

// Exec command timeouts (for os/exec calls)
const (
	ExecTimeoutFFmpeg  = 10 * time.Minute
	ExecTimeoutFFprobe = 30 * time.Second
)

// Staging directory layout inside a run's temp dir
const (
	StagingSourceDir    = "source"
	StagingGreetingsDir = "greetings"
	StagingComposedDir  = "composed"
	StagingRenderedDir  = "rendered"
)

// ArchiveName is the filename of the terminal artifact.
const ArchiveName = "rendered_videos.zip"
