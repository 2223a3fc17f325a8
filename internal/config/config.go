// SPDX-License-Identifier: MPL-2.0

// Package config loads findish configuration from an optional config file
// and FINDISH_* environment variables, falling back to built-in defaults.
// The CLI applies its flags on top, so precedence is flag > env > file >
// default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "findish"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "findish"
	// ConfigFileType is the config file format.
	ConfigFileType = "yaml"
	// EnvPrefix is the prefix for environment variable overrides, e.g.
	// FINDISH_WALK_MAX_DEPTH.
	EnvPrefix = "FINDISH"
)

type (
	// Config holds all findish settings.
	Config struct {
		Verbose bool        `mapstructure:"verbose"`
		NoColor bool        `mapstructure:"no_color"`
		Walk    WalkConfig  `mapstructure:"walk"`
		Watch   WatchConfig `mapstructure:"watch"`
	}

	// WalkConfig holds default traversal behavior.
	WalkConfig struct {
		MaxDepth    int      `mapstructure:"max_depth"`
		FollowLinks bool     `mapstructure:"follow_links"`
		FilesOnly   bool     `mapstructure:"files_only"`
		Ignore      []string `mapstructure:"ignore"`
	}

	// WatchConfig holds watch-mode settings.
	WatchConfig struct {
		// DebounceMillis is the quiet period after the last filesystem
		// event before the listing is refreshed.
		DebounceMillis int `mapstructure:"debounce_millis"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{DebounceMillis: 500},
	}
}

// configFilePathOverride, when set, forces Load to read exactly that file.
var configFilePathOverride string

// SetConfigFilePathOverride sets a custom config file path, typically from
// the --config flag. An empty value restores the default search.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Load reads the configuration. Without an override it searches the user
// config directory ($XDG_CONFIG_HOME/findish or the platform equivalent)
// and then the current directory for findish.yaml; a missing file is not an
// error. With an override the file must exist and parse.
func Load() (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("no_color", d.NoColor)
	v.SetDefault("walk.max_depth", d.Walk.MaxDepth)
	v.SetDefault("walk.follow_links", d.Walk.FollowLinks)
	v.SetDefault("walk.files_only", d.Walk.FilesOnly)
	v.SetDefault("walk.ignore", d.Walk.Ignore)
	v.SetDefault("watch.debounce_millis", d.Watch.DebounceMillis)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", configFilePathOverride, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
