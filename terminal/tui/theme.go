package tui

import "github.com/lixenwraith/logpager/terminal"

// Theme defines semantic styles for the pager widgets
type Theme struct {
	Text   terminal.Style
	Tilde  terminal.Style // rows past the end of the source
	Status terminal.Style
	Filter terminal.Style
	Error  terminal.Style
}

// DefaultTheme uses palette colors that read on both light and dark terminals
var DefaultTheme = Theme{
	Text:   terminal.Style{},
	Tilde:  terminal.Style{Fg: terminal.PaletteColor(244)},
	Status: terminal.Style{Fg: terminal.PaletteColor(231), Bg: terminal.PaletteColor(24)},
	Filter: terminal.Style{Fg: terminal.PaletteColor(220), Bg: terminal.PaletteColor(24), Attrs: terminal.AttrBold},
	Error:  terminal.Style{Fg: terminal.PaletteColor(231), Bg: terminal.PaletteColor(160), Attrs: terminal.AttrBold},
}
