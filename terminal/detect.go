package terminal

import (
	"os"
	"strings"
)

// trueColorEnv are variables set only by emulators known to render 24-bit color
var trueColorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
	"WT_SESSION",
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectColorMode(os.Getenv)
}

func detectColorMode(getenv func(string) string) ColorMode {
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, name := range trueColorEnv {
		if getenv(name) != "" {
			return ColorModeTrueColor
		}
	}
	term := strings.ToLower(getenv("TERM"))
	for _, suffix := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(term, suffix) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}
