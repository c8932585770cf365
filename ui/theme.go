package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GreetingTheme warms the default palette up for a celebration tool and
// tightens spacing so the whole input form fits one window.
type GreetingTheme struct{}

var _ fyne.Theme = (*GreetingTheme)(nil)

var (
	roseAccent  = color.NRGBA{R: 225, G: 29, B: 72, A: 255}
	roseButton  = color.NRGBA{R: 251, G: 113, B: 133, A: 255}
	renderGreen = color.NRGBA{R: 22, G: 163, B: 74, A: 255}
)

func (t *GreetingTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return roseAccent
	case theme.ColorNameButton:
		return roseButton
	case theme.ColorNameSuccess:
		return renderGreen
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *GreetingTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *GreetingTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *GreetingTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInnerPadding:
		return 3
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 11
	}
	return theme.DefaultTheme().Size(name)
}
