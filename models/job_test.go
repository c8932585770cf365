package models

import (
	"errors"
	"testing"
)

func TestNewRenderJob(t *testing.T) {
	j := NewRenderJob("/in/base.mp4", "/in/music.wav", []string{"Alice"})
	if j.ID == "" {
		t.Error("ID should not be empty")
	}
	if j.Status != StatusPending {
		t.Errorf("Status = %q, want %q", j.Status, StatusPending)
	}
	if j.OutputFormat != "mp4" {
		t.Errorf("OutputFormat = %q, want 'mp4'", j.OutputFormat)
	}
	if j.VideoPath != "/in/base.mp4" || j.MusicPath != "/in/music.wav" {
		t.Error("input paths not set")
	}
}

func TestRenderJob_GreetingText(t *testing.T) {
	j := NewRenderJob("v", "m", []string{"Alice"})
	if got := j.GreetingText("Alice"); got != "Hi Alice!" {
		t.Errorf("GreetingText() = %q, want 'Hi Alice!'", got)
	}

	j.GreetingPrefix = ""
	if got := j.GreetingText("Alice"); got != "Alice!" {
		t.Errorf("GreetingText() with empty prefix = %q, want 'Alice!'", got)
	}

	j.GreetingPrefix = "Happy birthday"
	j.GreetingSuffix = ", see you soon!"
	if got := j.GreetingText("Bob"); got != "Happy birthday Bob, see you soon!" {
		t.Errorf("GreetingText() = %q", got)
	}
}

func TestRenderJob_Complete(t *testing.T) {
	j := NewRenderJob("v", "m", []string{"Alice"})
	j.Complete("/out/rendered_videos.zip")
	if j.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", j.Status, StatusCompleted)
	}
	if j.Progress != 100 {
		t.Errorf("Progress = %d, want 100", j.Progress)
	}
	if j.ArchivePath != "/out/rendered_videos.zip" {
		t.Errorf("ArchivePath = %q", j.ArchivePath)
	}
	if j.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
}

func TestRenderJob_Fail(t *testing.T) {
	j := NewRenderJob("v", "m", []string{"Alice"})
	j.Fail(errors.New("synthesis failed"))
	if j.Status != StatusFailed {
		t.Errorf("Status = %q, want %q", j.Status, StatusFailed)
	}
	if j.StatusText() != "Failed: synthesis failed" {
		t.Errorf("StatusText() = %q", j.StatusText())
	}
}

func TestRenderJob_StatusText(t *testing.T) {
	j := NewRenderJob("v", "m", []string{"Alice"})
	j.SetStatus(StatusSynthesizing, "Generating greetings", 20)
	if j.StatusText() != "Generating greetings..." {
		t.Errorf("StatusText() = %q", j.StatusText())
	}
	if j.Progress != 20 {
		t.Errorf("Progress = %d, want 20", j.Progress)
	}
}
