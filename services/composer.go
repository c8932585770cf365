package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"greeting-studio/internal/config"
	"greeting-studio/internal/logger"
)

// Composer builds the mixed audio track for each recipient:
// 2s silence, then the greeting, then the trimmed source voiceover,
// with the music bed overlaid from t=0 under the whole length.
type Composer struct {
	ffmpeg     *FFmpegService
	stagingDir string

	videoPath string
	musicPath string
	clipStart float64

	voiceoverGain float64
	speechGain    float64
	musicGain     float64

	// Prepared once per run
	silencePath   string
	voiceoverPath string // empty when clipStart runs past the voiceover
	prepared      bool
}

// NewComposer creates a composer for one run. The base video and music
// are fixed inputs; only the greeting varies per recipient.
func NewComposer(ffmpeg *FFmpegService, stagingDir, videoPath, musicPath string,
	clipStart, voiceoverGain, speechGain, musicGain float64) *Composer {
	return &Composer{
		ffmpeg:        ffmpeg,
		stagingDir:    stagingDir,
		videoPath:     videoPath,
		musicPath:     musicPath,
		clipStart:     clipStart,
		voiceoverGain: voiceoverGain,
		speechGain:    speechGain,
		musicGain:     musicGain,
	}
}

// Prepare renders the run-constant segments: the intro silence and the
// trimmed, gain-adjusted source voiceover. A clip offset at or past the
// end of the voiceover yields an empty segment, not an error.
func (c *Composer) Prepare() error {
	composeDir := filepath.Join(c.stagingDir, config.StagingComposedDir)

	c.silencePath = filepath.Join(composeDir, "silence.wav")
	if err := c.ffmpeg.GenerateSilence(config.IntroSilence.Seconds(), c.silencePath); err != nil {
		return fmt.Errorf("failed to generate intro silence: %w", err)
	}

	duration, err := c.ffmpeg.GetDuration(c.videoPath)
	if err != nil {
		return fmt.Errorf("failed to probe base video: %w", err)
	}

	if c.clipStart >= duration {
		logger.Warn("Composer: clip offset %.2fs is past the voiceover end (%.2fs), dropping voiceover", c.clipStart, duration)
		c.voiceoverPath = ""
	} else {
		c.voiceoverPath = filepath.Join(composeDir, "voiceover.wav")
		if err := c.ffmpeg.ExtractVoiceover(c.videoPath, c.voiceoverPath, c.clipStart, c.voiceoverGain); err != nil {
			return fmt.Errorf("failed to extract voiceover: %w", err)
		}
	}

	c.prepared = true
	return nil
}

// Compose mixes one recipient's greeting into the final track at
// outputPath. Prepare must have been called.
func (c *Composer) Compose(greetingPath, outputPath string) error {
	if !c.prepared {
		return fmt.Errorf("composer not prepared")
	}

	stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))

	// Greeting to the uniform WAV profile with the speech gain applied
	speechPath := stem + "_greeting.wav"
	if err := c.ffmpeg.ConvertToComposeWAV(greetingPath, speechPath, c.speechGain); err != nil {
		return fmt.Errorf("failed to convert greeting audio: %w", err)
	}
	defer os.Remove(speechPath)

	// Silence, greeting, voiceover, in that exact order
	segments := []string{c.silencePath, speechPath}
	if c.voiceoverPath != "" {
		segments = append(segments, c.voiceoverPath)
	}

	concatPath := stem + "_concat.wav"
	if err := c.ffmpeg.ConcatAudioFiles(segments, concatPath); err != nil {
		return fmt.Errorf("failed to concatenate audio segments: %w", err)
	}
	defer os.Remove(concatPath)

	if err := c.ffmpeg.OverlayMusic(concatPath, c.musicPath, outputPath, c.musicGain); err != nil {
		return fmt.Errorf("failed to overlay music: %w", err)
	}

	return nil
}
