package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"greeting-studio/internal/config"
)

type FFmpegService struct {
	ffmpegPath string
}

func NewFFmpegService() *FFmpegService {
	// Try to find ffmpeg in common locations
	paths := []string{
		"/opt/homebrew/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
		"ffmpeg", // Use PATH
	}

	ffmpegPath := "ffmpeg"
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			ffmpegPath = p
			break
		}
	}

	return &FFmpegService{
		ffmpegPath: ffmpegPath,
	}
}

func NewFFmpegServiceWithPath(path string) *FFmpegService {
	if path == "" {
		return NewFFmpegService()
	}
	return &FFmpegService{
		ffmpegPath: path,
	}
}

// CheckInstalled verifies ffmpeg is available
func (s *FFmpegService) CheckInstalled() error {
	cmd := exec.Command(s.ffmpegPath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found at %s: %w", s.ffmpegPath, err)
	}
	return nil
}

// GetPath returns the ffmpeg executable path
func (s *FFmpegService) GetPath() string {
	return s.ffmpegPath
}

// GetDuration returns the duration of a media file in seconds
func (s *FFmpegService) GetDuration(path string) (float64, error) {
	// Use ffprobe to get duration
	ffprobePath := strings.Replace(s.ffmpegPath, "ffmpeg", "ffprobe", 1)

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFprobe)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(output)), "%f", &duration); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// NormalizeVideo re-encodes an uploaded video to a known-good
// codec/bitrate so downstream stages never see an unusual container
func (s *FFmpegService) NormalizeVideo(inputPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-i", inputPath,
		"-vcodec", config.NormalizeVideoCodec,
		"-acodec", config.NormalizeAudioCodec,
		"-b:v", config.NormalizeVideoBitrate,
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg normalization failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// ExtractVoiceover pulls the audio track from a video starting at
// clipStart seconds, applies a gain factor, and writes uniform WAV
// (44.1kHz stereo) so segments can be concatenated losslessly
func (s *FFmpegService) ExtractVoiceover(videoPath, outputPath string, clipStart, gain float64) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-ss", fmt.Sprintf("%.3f", clipStart),
		"-i", videoPath,
		"-vn",
		"-af", fmt.Sprintf("volume=%.6f", gain),
		"-ar", fmt.Sprintf("%d", config.ComposeSampleRate),
		"-ac", fmt.Sprintf("%d", config.ComposeChannels),
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg voiceover extraction failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// ConvertToComposeWAV converts any audio file to the uniform WAV
// profile, applying a gain factor
func (s *FFmpegService) ConvertToComposeWAV(inputPath, outputPath string, gain float64) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-i", inputPath,
		"-af", fmt.Sprintf("volume=%.6f", gain),
		"-ar", fmt.Sprintf("%d", config.ComposeSampleRate),
		"-ac", fmt.Sprintf("%d", config.ComposeChannels),
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg WAV conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// GenerateSilence creates a silent WAV of the specified duration
func (s *FFmpegService) GenerateSilence(duration float64, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=stereo:d=%.3f", config.ComposeSampleRate, duration),
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg silence generation failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// ConcatAudioFiles concatenates multiple audio files into one.
// Inputs must share the uniform WAV profile.
func (s *FFmpegService) ConcatAudioFiles(inputPaths []string, outputPath string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("no input files provided")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Create a temporary file list. A single quote inside a path ends
	// the demuxer's quoted string, so close the quote, escape, reopen.
	listPath := filepath.Join(filepath.Dir(outputPath), "concat_list.txt")
	var listContent strings.Builder
	for _, p := range inputPaths {
		listContent.WriteString(fmt.Sprintf("file '%s'\n", strings.ReplaceAll(p, "'", `'\''`)))
	}

	if err := os.WriteFile(listPath, []byte(listContent.String()), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// OverlayMusic mixes the music track under the voice track from t=0.
// The result keeps the voice track's length; the mix is not
// renormalized so the per-track gain factors survive.
func (s *FFmpegService) OverlayMusic(voicePath, musicPath, outputPath string, musicGain float64) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filterComplex := fmt.Sprintf(
		"[1:a]volume=%.6f[m];[0:a][m]amix=inputs=2:duration=first:dropout_transition=0:normalize=0[aout]",
		musicGain)

	args := []string{
		"-i", voicePath,
		"-i", musicPath,
		"-filter_complex", filterComplex,
		"-map", "[aout]",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg music overlay failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// RenderVideo replaces the base video's audio with the composed track
// and encodes to the output profile for the chosen container
func (s *FFmpegService) RenderVideo(videoPath, audioPath, outputPath, format string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v", // Video frames from the base video, unmodified
		"-map", "1:a", // Audio from the composed track
	}

	switch format {
	case "avi":
		args = append(args,
			"-c:v", config.AVIVideoCodec,
			"-c:a", config.AVIAudioCodec,
			"-b:v", config.AVIVideoBitrate,
			"-b:a", config.AVIAudioBitrate,
			"-s", config.AVIResolution,
			"-r", config.AVIFrameRate,
			"-ar", config.AVISampleRate,
			"-ac", config.AVIChannels,
		)
	case "mp4":
		args = append(args,
			"-c:v", config.MP4VideoCodec,
			"-c:a", config.MP4AudioCodec,
		)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	args = append(args, "-shortest", "-y", outputPath)

	ctx, cancel := context.WithTimeout(context.Background(), config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
