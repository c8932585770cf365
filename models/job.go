package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusPending      JobStatus = "pending"
	StatusCollecting   JobStatus = "collecting"
	StatusSynthesizing JobStatus = "synthesizing"
	StatusComposing    JobStatus = "composing"
	StatusRendering    JobStatus = "rendering"
	StatusPackaging    JobStatus = "packaging"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Dictionary identifies an uploaded pronunciation dictionary on the
// synthesis service.
type Dictionary struct {
	ID      string
	Version string
}

// RenderJob is the unit of work for one run. Inputs are fixed once the
// render begins; only status fields change afterwards.
type RenderJob struct {
	ID        string
	VideoPath string
	MusicPath string
	Names     []string

	// Greeting template wrapped around each name
	GreetingPrefix string
	GreetingSuffix string

	ClipStart      float64 // seconds trimmed from the start of the source voiceover
	VoiceoverLevel float64
	SpeechLevel    float64
	MusicLevel     float64

	OutputFormat   string
	VoiceID        string
	DictionaryPath string // optional pronunciation dictionary upload

	Status       JobStatus
	Progress     int // 0-100
	CurrentStage string
	Error        error
	CreatedAt    time.Time
	CompletedAt  *time.Time

	// Results
	ArchivePath string
	Rendered    []string // recipient names with an entry in the archive
	Skipped     []string // recipients lost to render failures
}

func NewRenderJob(videoPath, musicPath string, names []string) *RenderJob {
	return &RenderJob{
		ID:             uuid.New().String(),
		VideoPath:      videoPath,
		MusicPath:      musicPath,
		Names:          names,
		GreetingPrefix: "Hi",
		GreetingSuffix: "!",
		OutputFormat:   "mp4",
		Status:         StatusPending,
		CreatedAt:      time.Now(),
	}
}

// GreetingText renders the greeting template for one recipient. An
// empty prefix collapses to just the name plus suffix.
func (j *RenderJob) GreetingText(name string) string {
	if j.GreetingPrefix == "" {
		return name + j.GreetingSuffix
	}
	return j.GreetingPrefix + " " + name + j.GreetingSuffix
}

func (j *RenderJob) SetStatus(status JobStatus, stage string, progress int) {
	j.Status = status
	j.CurrentStage = stage
	j.Progress = progress
}

func (j *RenderJob) Complete(archivePath string) {
	j.Status = StatusCompleted
	j.ArchivePath = archivePath
	j.Progress = 100
	now := time.Now()
	j.CompletedAt = &now
}

func (j *RenderJob) Fail(err error) {
	j.Status = StatusFailed
	j.Error = err
	j.CurrentStage = "Failed"
}

func (j *RenderJob) StatusText() string {
	switch j.Status {
	case StatusPending:
		return "Ready to generate"
	case StatusCollecting:
		return "Preparing inputs..."
	case StatusSynthesizing:
		return "Generating greetings..."
	case StatusComposing:
		return "Mixing audio..."
	case StatusRendering:
		return "Rendering videos..."
	case StatusPackaging:
		return "Packaging archive..."
	case StatusCompleted:
		return "Completed!"
	case StatusFailed:
		if j.Error != nil {
			return "Failed: " + j.Error.Error()
		}
		return "Failed"
	default:
		return string(j.Status)
	}
}
