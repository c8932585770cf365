package services

import (
	"fmt"
	"os"
	"path/filepath"

	"greeting-studio/internal/config"
	"greeting-studio/internal/logger"
	"greeting-studio/models"
)

type ProgressCallback func(stage string, percent int, message string)

// Pipeline runs the five-stage greeting render: collect inputs,
// synthesize greetings, compose audio, render videos, package the
// archive. Recipients are processed strictly one at a time.
type Pipeline struct {
	ffmpeg   *FFmpegService
	archiver *Archiver
	config   *models.Config

	onProgress ProgressCallback
	tempDir    string
}

func NewPipeline(cfg *models.Config) *Pipeline {
	tempDir := filepath.Join(os.TempDir(), "greeting-studio")
	os.MkdirAll(tempDir, 0755)

	return &Pipeline{
		ffmpeg:   NewFFmpegServiceWithPath(cfg.FFmpegPath),
		archiver: NewArchiver(),
		config:   cfg,
		tempDir:  tempDir,
	}
}

func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.onProgress = cb
}

func (p *Pipeline) progress(stage string, percent int, message string) {
	if p.onProgress != nil {
		p.onProgress(stage, percent, message)
	}
}

// ValidateJob checks that a job can run before any staging writes or
// synthesis calls happen
func (p *Pipeline) ValidateJob(job *models.RenderJob) error {
	if job.VideoPath == "" {
		return fmt.Errorf("base video is required")
	}
	if _, err := os.Stat(job.VideoPath); err != nil {
		return fmt.Errorf("base video not found: %s", job.VideoPath)
	}
	if job.MusicPath == "" {
		return fmt.Errorf("music track is required")
	}
	if _, err := os.Stat(job.MusicPath); err != nil {
		return fmt.Errorf("music track not found: %s", job.MusicPath)
	}
	if len(job.Names) == 0 {
		return fmt.Errorf("recipient list is empty")
	}
	if job.ClipStart < 0 {
		return fmt.Errorf("clip offset must not be negative")
	}
	if job.OutputFormat != "mp4" && job.OutputFormat != "avi" {
		return fmt.Errorf("unsupported output format: %s", job.OutputFormat)
	}
	if p.config.APIKeyForVoice(job.VoiceID) == "" {
		return fmt.Errorf("no API key configured for voice %s (set ELEVENLABS_API_KEY)", job.VoiceID)
	}
	if err := p.ffmpeg.CheckInstalled(); err != nil {
		return err
	}
	return nil
}

// Run executes the full pipeline for one job.
//
// Failure policy: a synthesis failure aborts the whole run; a compose
// or render failure skips that recipient and the archive keeps every
// success. Staging is reclaimed on every exit path.
func (p *Pipeline) Run(job *models.RenderJob) error {
	if err := p.ValidateJob(job); err != nil {
		job.Fail(err)
		return err
	}

	// Run-scoped staging: the job ID keys the directory so two runs can
	// never share filenames
	stagingDir := filepath.Join(p.tempDir, job.ID)
	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		job.Fail(err)
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir) // Best-effort cleanup on success and failure alike

	// Stage 1: Collect & normalize inputs
	logger.Info("Pipeline: Stage 1/5 - Preparing inputs for %d recipients", len(job.Names))
	p.progress("Collecting", config.ProgressCollectStart, "Preparing inputs...")
	job.SetStatus(models.StatusCollecting, "Preparing inputs", config.ProgressCollectStart)

	recipients, err := models.BuildRecipients(job.Names, stagingDir, job.OutputFormat)
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("invalid recipient list: %w", err)
	}

	videoPath := job.VideoPath
	if p.config.NormalizeUploads {
		normalizedPath := filepath.Join(stagingDir, config.StagingSourceDir, "normalized.mp4")
		if err := p.ffmpeg.NormalizeVideo(job.VideoPath, normalizedPath); err != nil {
			job.Fail(err)
			return fmt.Errorf("video normalization failed: %w", err)
		}
		videoPath = normalizedPath
	}

	// One synthesis client per run, shared by every recipient
	synth := NewElevenLabsService(p.config.APIKeyForVoice(job.VoiceID), job.VoiceID)

	if job.DictionaryPath != "" {
		dict, err := synth.UploadDictionary(job.DictionaryPath, "greeting-run-"+job.ID)
		if err != nil {
			// Degrades gracefully: the run proceeds without a dictionary
			logger.Warn("Pipeline: dictionary upload failed, continuing without it: %v", err)
			p.progress("Collecting", config.ProgressCollectEnd, "Dictionary upload failed, continuing without it")
		} else {
			synth.SetDictionary(dict)
		}
	}
	p.progress("Collecting", config.ProgressCollectEnd, "Inputs ready")

	// Stage 2: Synthesize greetings. The first failure aborts the run;
	// a recipient is never silently substituted.
	logger.Info("Pipeline: Stage 2/5 - Synthesizing greetings (voice=%s)", job.VoiceID)
	job.SetStatus(models.StatusSynthesizing, "Generating greetings", config.ProgressSynthesizeStart)

	synthesizeRange := config.ProgressSynthesizeEnd - config.ProgressSynthesizeStart
	for i, r := range recipients {
		percent := config.ProgressSynthesizeStart + (i*synthesizeRange)/len(recipients)
		p.progress("Synthesizing", percent, fmt.Sprintf("Greeting %d/%d: %s", i+1, len(recipients), r.Name))

		text := job.GreetingText(r.Name)
		if err := synth.Synthesize(text, r.GreetingPath); err != nil {
			job.Fail(err)
			return fmt.Errorf("greeting synthesis failed for %q: %w", r.Name, err)
		}
	}
	p.progress("Synthesizing", config.ProgressSynthesizeEnd, "All greetings generated")

	// Stages 3+4: Compose and render per recipient
	composer := NewComposer(p.ffmpeg, stagingDir, videoPath, job.MusicPath,
		job.ClipStart,
		models.GainFactor(job.VoiceoverLevel),
		models.GainFactor(job.SpeechLevel),
		models.GainFactor(job.MusicLevel))

	logger.Info("Pipeline: Stage 3/5 - Composing audio tracks")
	job.SetStatus(models.StatusComposing, "Mixing audio", config.ProgressComposeStart)
	if err := composer.Prepare(); err != nil {
		job.Fail(err)
		return fmt.Errorf("audio preparation failed: %w", err)
	}

	var entries []Entry
	composeRange := config.ProgressComposeEnd - config.ProgressComposeStart
	renderRange := config.ProgressRenderEnd - config.ProgressRenderStart
	for i, r := range recipients {
		percent := config.ProgressComposeStart + (i*composeRange)/len(recipients)
		p.progress("Composing", percent, fmt.Sprintf("Audio %d/%d: %s", i+1, len(recipients), r.Name))
		job.SetStatus(models.StatusComposing, "Mixing audio", percent)

		// A failed recipient is skipped; earlier outputs stay intact
		if err := composer.Compose(r.GreetingPath, r.ComposedPath); err != nil {
			logger.Error("Pipeline: skipping %q, audio composition failed: %v", r.Name, err)
			job.Skipped = append(job.Skipped, r.Name)
			continue
		}

		percent = config.ProgressRenderStart + (i*renderRange)/len(recipients)
		p.progress("Rendering", percent, fmt.Sprintf("Video %d/%d: %s", i+1, len(recipients), r.Name))
		job.SetStatus(models.StatusRendering, "Rendering videos", percent)

		if err := p.ffmpeg.RenderVideo(videoPath, r.ComposedPath, r.OutputPath, job.OutputFormat); err != nil {
			logger.Error("Pipeline: skipping %q, video render failed: %v", r.Name, err)
			job.Skipped = append(job.Skipped, r.Name)
			continue
		}

		job.Rendered = append(job.Rendered, r.Name)
		entries = append(entries, Entry{Path: r.OutputPath, Name: r.OutputName})
	}

	if len(entries) == 0 {
		err := fmt.Errorf("no videos rendered: all %d recipients failed", len(recipients))
		job.Fail(err)
		return err
	}

	// Stage 5: Package the archive
	logger.Info("Pipeline: Stage 5/5 - Packaging %d videos", len(entries))
	p.progress("Packaging", config.ProgressPackageStart, "Building archive...")
	job.SetStatus(models.StatusPackaging, "Packaging archive", config.ProgressPackageStart)

	archivePath := filepath.Join(p.outputDirectory(), config.ArchiveName)
	if err := p.archiver.Package(entries, archivePath); err != nil {
		job.Fail(err)
		return fmt.Errorf("archive packaging failed: %w", err)
	}

	job.Complete(archivePath)
	if len(job.Skipped) > 0 {
		logger.Warn("Pipeline: completed with %d skipped recipients: %v", len(job.Skipped), job.Skipped)
	}
	logger.Info("Pipeline: Complete! Archive: %s", archivePath)
	p.progress("Complete", config.ProgressPackageEnd, "All videos packaged")

	return nil
}

// RunAsync runs the pipeline in a goroutine
func (p *Pipeline) RunAsync(job *models.RenderJob, done chan<- error) {
	go func() {
		done <- p.Run(job)
	}()
}

// Cleanup removes all staging directories
func (p *Pipeline) Cleanup() error {
	return os.RemoveAll(p.tempDir)
}

func (p *Pipeline) outputDirectory() string {
	dir := p.config.OutputDirectory
	if dir == "" {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, "Desktop", "Greetings")
	}
	os.MkdirAll(dir, 0755)
	return dir
}
