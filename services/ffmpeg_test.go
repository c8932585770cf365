package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newStubMediaTools writes fake ffmpeg/ffprobe executables into a temp
// dir and returns the ffmpeg path. The ffmpeg stub touches its final
// argument (the output file) and, when invoked with a concat list,
// copies the list to $CONCAT_CAPTURE so tests can inspect it. The
// ffprobe stub prints a fixed duration.
func newStubMediaTools(t *testing.T, duration string) string {
	t.Helper()
	dir := t.TempDir()

	ffmpeg := `#!/bin/sh
prev=""
input=""
last=""
for a in "$@"; do
	if [ "$prev" = "-i" ]; then input="$a"; fi
	prev="$a"
	last="$a"
done
case "$input" in
*concat_list.txt)
	if [ -n "$CONCAT_CAPTURE" ]; then cp "$input" "$CONCAT_CAPTURE"; fi
	;;
esac
: > "$last"
`
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte(ffmpeg), 0755); err != nil {
		t.Fatalf("failed to write ffmpeg stub: %v", err)
	}

	ffprobe := "#!/bin/sh\necho " + duration + "\n"
	if err := os.WriteFile(filepath.Join(dir, "ffprobe"), []byte(ffprobe), 0755); err != nil {
		t.Fatalf("failed to write ffprobe stub: %v", err)
	}

	return filepath.Join(dir, "ffmpeg")
}

func TestNewFFmpegService(t *testing.T) {
	s := NewFFmpegService()
	if s == nil {
		t.Fatal("NewFFmpegService() returned nil")
	}
	if s.ffmpegPath == "" {
		t.Error("ffmpegPath should not be empty")
	}
}

func TestNewFFmpegServiceWithPath(t *testing.T) {
	path := "/custom/ffmpeg"
	s := NewFFmpegServiceWithPath(path)
	if s.ffmpegPath != path {
		t.Errorf("ffmpegPath = %q, want %q", s.ffmpegPath, path)
	}
}

func TestNewFFmpegServiceWithPath_Empty(t *testing.T) {
	s := NewFFmpegServiceWithPath("")
	if s.ffmpegPath == "" {
		t.Error("empty path should fall back to discovery")
	}
}

func TestFFmpegService_CheckInstalled_NotFound(t *testing.T) {
	s := &FFmpegService{ffmpegPath: "/nonexistent/ffmpeg"}
	if err := s.CheckInstalled(); err == nil {
		t.Error("CheckInstalled() should return error for nonexistent ffmpeg")
	}
}

func TestFFmpegService_GetDuration_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	duration, err := s.GetDuration("/nonexistent/video.mp4")
	if err == nil {
		t.Error("GetDuration() should return error for nonexistent input")
	}
	if duration != 0 {
		t.Errorf("GetDuration() = %v, want 0 for error case", duration)
	}
}

func TestFFmpegService_NormalizeVideo_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "normalized.mp4")
	if err := s.NormalizeVideo("/nonexistent/video.mp4", outputPath); err == nil {
		t.Error("NormalizeVideo() should return error for nonexistent input")
	}
}

func TestFFmpegService_ExtractVoiceover_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "voiceover.wav")
	if err := s.ExtractVoiceover("/nonexistent/video.mp4", outputPath, 1.5, 1.0); err == nil {
		t.Error("ExtractVoiceover() should return error for nonexistent input")
	}
}

func TestFFmpegService_ConcatAudioFiles_Empty(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "output.wav")
	if err := s.ConcatAudioFiles([]string{}, outputPath); err == nil {
		t.Error("ConcatAudioFiles() should return error for empty list")
	}
}

func TestFFmpegService_ConcatAudioFiles_QuotedPath(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "captured_list.txt")
	t.Setenv("CONCAT_CAPTURE", capture)

	s := NewFFmpegServiceWithPath(newStubMediaTools(t, "10.0"))
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "O'Brien_greeting.wav")
	if err := s.ConcatAudioFiles([]string{input}, filepath.Join(tmpDir, "out.wav")); err != nil {
		t.Fatalf("ConcatAudioFiles() error = %v", err)
	}

	data, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("concat list was not passed to ffmpeg: %v", err)
	}
	// A raw quote would end the quoted string at O and truncate the path
	if !strings.Contains(string(data), `O'\''Brien_greeting.wav'`) {
		t.Errorf("concat list = %q, single quotes in paths must be escaped", data)
	}
}

func TestFFmpegService_ConcatAudioFiles_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "output.wav")
	err := s.ConcatAudioFiles([]string{"/nonexistent/a.wav", "/nonexistent/b.wav"}, outputPath)
	if err == nil {
		t.Error("ConcatAudioFiles() should return error for nonexistent input")
	}
}

func TestFFmpegService_OverlayMusic_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "mixed.wav")
	err := s.OverlayMusic("/nonexistent/voice.wav", "/nonexistent/music.wav", outputPath, 0.05)
	if err == nil {
		t.Error("OverlayMusic() should return error for nonexistent input")
	}
}

func TestFFmpegService_RenderVideo_UnsupportedFormat(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "out.mkv")
	err := s.RenderVideo("/in/video.mp4", "/in/audio.wav", outputPath, "mkv")
	if err == nil {
		t.Fatal("RenderVideo() should reject unsupported formats")
	}
}

func TestFFmpegService_RenderVideo_InvalidInput(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "out.mp4")
	err := s.RenderVideo("/nonexistent/video.mp4", "/nonexistent/audio.wav", outputPath, "mp4")
	if err == nil {
		t.Error("RenderVideo() should return error for nonexistent input")
	}
}

func TestFFmpegService_GenerateSilence_InvalidPath(t *testing.T) {
	s := &FFmpegService{ffmpegPath: "/nonexistent/ffmpeg"}
	if err := s.GenerateSilence(2.0, filepath.Join(t.TempDir(), "silence.wav")); err == nil {
		t.Error("GenerateSilence() should return error for nonexistent ffmpeg")
	}
}

func TestFFmpegService_OutputDirectoryCreation(t *testing.T) {
	s := NewFFmpegService()
	outputPath := filepath.Join(t.TempDir(), "nested", "dir", "output.wav")

	// This fails because the input doesn't exist, but the directory
	// should be created first
	_ = s.ExtractVoiceover("/nonexistent/video.mp4", outputPath, 0, 1.0)

	nestedDir := filepath.Dir(outputPath)
	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("ExtractVoiceover() should create output directory")
	}
}
