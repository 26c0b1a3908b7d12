// Package config loads logpager settings from TOML, defaults and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/logpager/terminal"
	"github.com/lixenwraith/logpager/terminal/tui"
)

// Config is the top-level pager configuration
type Config struct {
	Terminal TerminalConfig      `mapstructure:"terminal"`
	View     ViewConfig          `mapstructure:"view"`
	Filter   FilterConfig        `mapstructure:"filter"`
	Colors   ColorsConfig        `mapstructure:"colors"`
	Keys     map[string][]string `mapstructure:"keys"`
	Log      LogConfig           `mapstructure:"log"`
}

// TerminalConfig selects the device backend and input timing
type TerminalConfig struct {
	Backend       string        `mapstructure:"backend"`
	EscapeTimeout time.Duration `mapstructure:"escape_timeout"`
	Color         string        `mapstructure:"color"`
}

// ViewConfig controls line display
type ViewConfig struct {
	TabWidth int  `mapstructure:"tab_width"`
	Follow   bool `mapstructure:"follow"`
}

// FilterConfig holds patterns applied to every line
type FilterConfig struct {
	Exclude []string `mapstructure:"exclude"`
}

// ColorsConfig overrides theme colors. Values are W3C names or #rrggbb;
// empty keeps the built-in color
type ColorsConfig struct {
	StatusFg string `mapstructure:"status_fg"`
	StatusBg string `mapstructure:"status_bg"`
	FilterFg string `mapstructure:"filter_fg"`
	ErrorFg  string `mapstructure:"error_fg"`
	ErrorBg  string `mapstructure:"error_bg"`
	TildeFg  string `mapstructure:"tilde_fg"`
}

// LogConfig controls the diagnostic log
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Terminal: TerminalConfig{
			Backend:       terminal.BackendNative,
			EscapeTimeout: terminal.DefaultEscapeTimeout,
			Color:         "auto",
		},
		View: ViewConfig{
			TabWidth: tui.DefaultTabWidth,
		},
		Keys: map[string][]string{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file read when none is given
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logpager", "config.toml"), nil
}

// Validate checks values that cannot be checked by type alone
func (c *Config) Validate() error {
	switch c.Terminal.Backend {
	case terminal.BackendNative, terminal.BackendTcell:
	default:
		return fmt.Errorf("unsupported terminal.backend %q", c.Terminal.Backend)
	}
	if c.Terminal.EscapeTimeout <= 0 {
		return fmt.Errorf("terminal.escape_timeout must be positive, got %s", c.Terminal.EscapeTimeout)
	}
	if _, err := terminal.ParseColorMode(strings.ToLower(c.Terminal.Color)); err != nil {
		return err
	}
	if c.View.TabWidth < 1 || c.View.TabWidth > 32 {
		return fmt.Errorf("view.tab_width must be in [1, 32], got %d", c.View.TabWidth)
	}
	if _, err := c.Colors.Apply(tui.DefaultTheme); err != nil {
		return err
	}
	return nil
}

// ColorMode resolves terminal.color, detecting the terminal for "auto"
func (c *Config) ColorMode() terminal.ColorMode {
	mode, err := terminal.ParseColorMode(strings.ToLower(c.Terminal.Color))
	if err != nil {
		return terminal.DetectColorMode()
	}
	return mode
}

// ParseColor converts a W3C color name or a #rrggbb value. Named ANSI
// colors stay palette colors so the terminal's own scheme applies
func ParseColor(name string) (terminal.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return 0, nil
	}
	c := tcell.GetColor(name)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	if !c.IsRGB() && c&^tcell.ColorValid < 256 {
		return terminal.PaletteColor(uint8(c &^ tcell.ColorValid)), nil
	}
	r, g, b := c.RGB()
	if r < 0 {
		return 0, fmt.Errorf("color %q has no RGB value", name)
	}
	return terminal.RGBColor(uint8(r), uint8(g), uint8(b)), nil
}

// Apply returns base with the configured overrides
func (c ColorsConfig) Apply(base tui.Theme) (tui.Theme, error) {
	theme := base
	overrides := []struct {
		key   string
		value string
		dst   *terminal.Color
	}{
		{"colors.status_fg", c.StatusFg, &theme.Status.Fg},
		{"colors.status_bg", c.StatusBg, &theme.Status.Bg},
		{"colors.filter_fg", c.FilterFg, &theme.Filter.Fg},
		{"colors.error_fg", c.ErrorFg, &theme.Error.Fg},
		{"colors.error_bg", c.ErrorBg, &theme.Error.Bg},
		{"colors.tilde_fg", c.TildeFg, &theme.Tilde.Fg},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		col, err := ParseColor(o.value)
		if err != nil {
			return base, fmt.Errorf("%s: %w", o.key, err)
		}
		*o.dst = col
	}
	// Filter shares the status background
	if c.StatusBg != "" {
		theme.Filter.Bg = theme.Status.Bg
	}
	return theme, nil
}
