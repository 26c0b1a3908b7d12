package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/logpager/terminal"
	"github.com/lixenwraith/logpager/terminal/tui"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[terminal]
backend = "tcell"
escape_timeout = "25ms"
color = "truecolor"

[view]
tab_width = 4
follow = true

[filter]
exclude = ["healthz", "^DEBUG"]

[colors]
status_bg = "#102030"

[keys]
quit = ["q", "ctrl_d"]
filter = "f"

[log]
level = "debug"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, terminal.BackendTcell, cfg.Terminal.Backend)
	assert.Equal(t, 25*time.Millisecond, cfg.Terminal.EscapeTimeout)
	assert.Equal(t, terminal.ColorModeTrueColor, cfg.ColorMode())
	assert.Equal(t, 4, cfg.View.TabWidth)
	assert.True(t, cfg.View.Follow)
	assert.Equal(t, []string{"healthz", "^DEBUG"}, cfg.Filter.Exclude)
	assert.Equal(t, []string{"q", "ctrl_d"}, cfg.Keys["quit"])
	assert.Equal(t, []string{"f"}, cfg.Keys["filter"])
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingDefaultUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, terminal.BackendNative, cfg.Terminal.Backend)
	assert.Equal(t, terminal.DefaultEscapeTimeout, cfg.Terminal.EscapeTimeout)
	assert.Equal(t, tui.DefaultTabWidth, cfg.View.TabWidth)
	assert.NotNil(t, cfg.Keys)
}

func TestLoadMissingExplicitFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	assert.Error(t, err)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[view]
tab_width = 4
`)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("tab-width", 8, "")
	flags.String("backend", "native", "")
	require.NoError(t, flags.Parse([]string{"--tab-width=2"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.View.TabWidth)
	assert.Equal(t, terminal.BackendNative, cfg.Terminal.Backend)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"backend", "[terminal]\nbackend = \"curses\"\n", "terminal.backend"},
		{"timeout", "[terminal]\nescape_timeout = \"0s\"\n", "escape_timeout"},
		{"color mode", "[terminal]\ncolor = \"16\"\n", "color mode"},
		{"tab width", "[view]\ntab_width = 0\n", "tab_width"},
		{"theme color", "[colors]\nerror_bg = \"not-a-color\"\n", "colors.error_bg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.True(t, c.IsRGB())
	r, g, b := c.RGB()
	assert.Equal(t, [3]uint8{0xff, 0x80, 0x00}, [3]uint8{r, g, b})

	c, err = ParseColor("Red")
	require.NoError(t, err)
	assert.False(t, c.IsRGB())
	assert.Equal(t, uint8(9), c.Index())

	c, err = ParseColor("default")
	require.NoError(t, err)
	assert.True(t, c.IsDefault())

	_, err = ParseColor("blurple")
	assert.Error(t, err)
}

func TestColorsApply(t *testing.T) {
	theme, err := ColorsConfig{StatusBg: "navy", TildeFg: "#000000"}.Apply(tui.DefaultTheme)
	require.NoError(t, err)
	assert.Equal(t, terminal.PaletteColor(4), theme.Status.Bg)
	assert.Equal(t, theme.Status.Bg, theme.Filter.Bg)
	assert.Equal(t, terminal.RGBColor(0, 0, 0), theme.Tilde.Fg)
	assert.Equal(t, tui.DefaultTheme.Error, theme.Error)
}
