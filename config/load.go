package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"backend":        "terminal.backend",
	"escape-timeout": "terminal.escape_timeout",
	"color":          "terminal.color",
	"tab-width":      "view.tab_width",
	"follow":         "view.follow",
	"exclude":        "filter.exclude",
	"log-file":       "log.file",
	"log-level":      "log.level",
}

// Load reads configuration from path. An empty path reads DefaultPath and
// tolerates its absence; an explicit path must exist. Flags present in
// flags and changed by the user override file values
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("terminal.backend", cfg.Terminal.Backend)
	v.SetDefault("terminal.escape_timeout", cfg.Terminal.EscapeTimeout)
	v.SetDefault("terminal.color", cfg.Terminal.Color)
	v.SetDefault("view.tab_width", cfg.View.TabWidth)
	v.SetDefault("view.follow", cfg.View.Follow)
	v.SetDefault("filter.exclude", cfg.Filter.Exclude)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			if explicit {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Keys == nil {
		cfg.Keys = map[string][]string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
