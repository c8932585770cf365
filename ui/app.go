package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"greeting-studio/internal/recipients"
	"greeting-studio/models"
	"greeting-studio/services"
)

// MainUI is the main application UI: one input form, a Generate
// button, and a progress view.
type MainUI struct {
	window   fyne.Window
	config   *models.Config
	pipeline *services.Pipeline

	// Selected input files
	videoPath      string
	musicPath      string
	dictionaryPath string

	// UI components
	videoLabel      *widget.Label
	musicLabel      *widget.Label
	dictionaryLabel *widget.Label
	namesEntry      *widget.Entry
	clipStartEntry  *widget.Entry
	voiceoverSlider *widget.Slider
	speechSlider    *widget.Slider
	musicSlider     *widget.Slider
	formatSelect    *widget.Select
	voiceSelect     *widget.Select
	generateButton  *widget.Button
	progressBar     *widget.ProgressBar
	statusLabel     *widget.Label
}

// NewMainUI creates the main application UI
func NewMainUI(w fyne.Window) *MainUI {
	config, err := models.LoadConfig()
	if err != nil {
		config = models.DefaultConfig()
	}

	ui := &MainUI{
		window:   w,
		config:   config,
		pipeline: services.NewPipeline(config),
	}

	ui.pipeline.SetProgressCallback(func(stage string, percent int, message string) {
		fyne.Do(func() {
			ui.progressBar.SetValue(float64(percent) / 100)
			ui.statusLabel.SetText(message)
		})
	})

	return ui
}

// Build creates the complete UI layout
func (ui *MainUI) Build() fyne.CanvasObject {
	ui.videoLabel = widget.NewLabel("No video selected")
	ui.musicLabel = widget.NewLabel("No music selected")
	ui.dictionaryLabel = widget.NewLabel("None (optional)")

	videoButton := widget.NewButton("Upload Base Video", func() {
		ui.pickFile([]string{".mp4", ".avi"}, func(path string) {
			ui.videoPath = path
			ui.videoLabel.SetText(filepath.Base(path))
		})
	})
	musicButton := widget.NewButton("Upload Music", func() {
		ui.pickFile([]string{".wav", ".mp3"}, func(path string) {
			ui.musicPath = path
			ui.musicLabel.SetText(filepath.Base(path))
		})
	})
	dictionaryButton := widget.NewButton("Pronunciation Dictionary", func() {
		ui.pickFile(nil, func(path string) {
			ui.dictionaryPath = path
			ui.dictionaryLabel.SetText(filepath.Base(path))
		})
	})

	ui.namesEntry = widget.NewMultiLineEntry()
	ui.namesEntry.SetPlaceHolder("Enter names, one per line")
	ui.namesEntry.SetMinRowsVisible(6)

	importButton := widget.NewButton("Import CSV...", func() {
		ui.pickFile([]string{".csv", ".txt"}, func(path string) {
			names, err := recipients.ParseFile(path)
			if err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			text := ""
			for _, name := range names {
				text += name + "\n"
			}
			ui.namesEntry.SetText(text)
		})
	})

	ui.clipStartEntry = widget.NewEntry()
	ui.clipStartEntry.SetText(fmt.Sprintf("%.1f", ui.config.ClipStart))

	ui.voiceoverSlider = ui.newLevelSlider(ui.config.VoiceoverLevel)
	ui.speechSlider = ui.newLevelSlider(ui.config.SpeechLevel)
	ui.musicSlider = ui.newLevelSlider(ui.config.MusicLevel)

	ui.formatSelect = widget.NewSelect([]string{"mp4", "avi"}, nil)
	ui.formatSelect.SetSelected(ui.config.OutputFormat)

	ui.voiceSelect = widget.NewSelect(ui.config.VoiceNames(), nil)
	if len(ui.config.Voices) > 0 {
		ui.voiceSelect.SetSelectedIndex(0)
	}

	ui.generateButton = widget.NewButton("Generate Videos", ui.onGenerate)
	ui.generateButton.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("Ready")

	form := widget.NewForm(
		widget.NewFormItem("Base Video", container.NewBorder(nil, nil, nil, videoButton, ui.videoLabel)),
		widget.NewFormItem("Music", container.NewBorder(nil, nil, nil, musicButton, ui.musicLabel)),
		widget.NewFormItem("Names", container.NewBorder(nil, importButton, nil, nil, ui.namesEntry)),
		widget.NewFormItem("Clip Start (s)", ui.clipStartEntry),
		widget.NewFormItem("Voiceover Level", ui.voiceoverSlider),
		widget.NewFormItem("Greeting Level", ui.speechSlider),
		widget.NewFormItem("Music Level", ui.musicSlider),
		widget.NewFormItem("Output Format", ui.formatSelect),
		widget.NewFormItem("Voice", ui.voiceSelect),
		widget.NewFormItem("Dictionary", container.NewBorder(nil, nil, nil, dictionaryButton, ui.dictionaryLabel)),
	)

	return container.NewVBox(
		form,
		ui.generateButton,
		ui.progressBar,
		ui.statusLabel,
	)
}

func (ui *MainUI) newLevelSlider(value float64) *widget.Slider {
	s := widget.NewSlider(-100, 100)
	s.Step = 1
	s.SetValue(value)
	return s
}

func (ui *MainUI) pickFile(extensions []string, onPicked func(path string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		onPicked(reader.URI().Path())
	}, ui.window)
	if len(extensions) > 0 {
		fd.SetFilter(storage.NewExtensionFileFilter(extensions))
	}
	fd.Show()
}

// onGenerate validates the form and starts a run. All required inputs
// are checked before any work begins.
func (ui *MainUI) onGenerate() {
	names := recipients.ParseText(ui.namesEntry.Text)
	if ui.videoPath == "" || ui.musicPath == "" || len(names) == 0 {
		dialog.ShowError(fmt.Errorf("please provide a base video, a music track, and at least one name"), ui.window)
		return
	}

	var clipStart float64
	if _, err := fmt.Sscanf(ui.clipStartEntry.Text, "%f", &clipStart); err != nil || clipStart < 0 {
		dialog.ShowError(fmt.Errorf("clip start must be a non-negative number of seconds"), ui.window)
		return
	}

	job := models.NewRenderJob(ui.videoPath, ui.musicPath, names)
	job.GreetingPrefix = ui.config.GreetingPrefix
	job.GreetingSuffix = ui.config.GreetingSuffix
	job.ClipStart = clipStart
	job.VoiceoverLevel = ui.voiceoverSlider.Value
	job.SpeechLevel = ui.speechSlider.Value
	job.MusicLevel = ui.musicSlider.Value
	job.OutputFormat = ui.formatSelect.Selected
	job.VoiceID = ui.config.VoiceIDByName(ui.voiceSelect.Selected)
	job.DictionaryPath = ui.dictionaryPath

	if err := ui.pipeline.ValidateJob(job); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.generateButton.Disable()
	ui.statusLabel.SetText("Starting...")

	go func() {
		err := ui.pipeline.Run(job)
		fyne.Do(func() {
			ui.generateButton.Enable()
			if err != nil {
				ui.statusLabel.SetText(job.StatusText())
				dialog.ShowError(err, ui.window)
				return
			}

			message := fmt.Sprintf("Rendered %d videos to %s", len(job.Rendered), job.ArchivePath)
			if len(job.Skipped) > 0 {
				message += fmt.Sprintf("\nSkipped: %v", job.Skipped)
			}
			ui.statusLabel.SetText("Processing complete!")
			dialog.ShowInformation("Done", message, ui.window)
		})
	}()
}
