package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"greeting-studio/internal/logger"
	"greeting-studio/internal/recipients"
	"greeting-studio/models"
	"greeting-studio/services"
	"greeting-studio/ui"
)

func main() {
	batch := flag.Bool("batch", false, "run headless and exit instead of opening the UI")
	videoPath := flag.String("video", "", "base video file (batch mode)")
	musicPath := flag.String("music", "", "music track file (batch mode)")
	namesPath := flag.String("names", "", "recipient list file, .csv or newline-delimited text (batch mode)")
	format := flag.String("format", "", "output container format, mp4 or avi (batch mode)")
	clipStart := flag.Float64("clip-start", -1, "seconds trimmed from the voiceover start (batch mode)")
	dictionary := flag.String("dictionary", "", "pronunciation dictionary file (batch mode)")
	flag.Parse()

	if *batch {
		if err := runBatch(*videoPath, *musicPath, *namesPath, *format, *clipStart, *dictionary); err != nil {
			logger.Error("Batch run failed: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.New()
	a.Settings().SetTheme(&ui.GreetingTheme{})

	w := a.NewWindow("Greeting Studio")
	w.Resize(fyne.NewSize(640, 760))

	mainUI := ui.NewMainUI(w)
	w.SetContent(mainUI.Build())

	w.ShowAndRun()
}

// runBatch renders one job from command-line flags with no interactive
// confirmation, the way the standalone scripts this tool replaced did.
func runBatch(videoPath, musicPath, namesPath, format string, clipStart float64, dictionary string) error {
	if videoPath == "" || musicPath == "" || namesPath == "" {
		return fmt.Errorf("batch mode requires -video, -music, and -names")
	}

	cfg, err := models.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	names, err := recipients.ParseFile(namesPath)
	if err != nil {
		return err
	}

	job := models.NewRenderJob(videoPath, musicPath, names)
	job.GreetingPrefix = cfg.GreetingPrefix
	job.GreetingSuffix = cfg.GreetingSuffix
	job.VoiceoverLevel = cfg.VoiceoverLevel
	job.SpeechLevel = cfg.SpeechLevel
	job.MusicLevel = cfg.MusicLevel
	job.VoiceID = cfg.DefaultVoiceID
	job.DictionaryPath = dictionary

	job.ClipStart = cfg.ClipStart
	if clipStart >= 0 {
		job.ClipStart = clipStart
	}
	job.OutputFormat = cfg.OutputFormat
	if format != "" {
		job.OutputFormat = format
	}

	pipeline := services.NewPipeline(cfg)
	pipeline.SetProgressCallback(func(stage string, percent int, message string) {
		logger.Info("%s (%d%%): %s", stage, percent, message)
	})

	if err := pipeline.Run(job); err != nil {
		return err
	}

	logger.Info("Archive: %s", job.ArchivePath)
	if len(job.Skipped) > 0 {
		logger.Warn("Skipped recipients: %v", job.Skipped)
	}
	return nil
}
