// Package config loads the optional asciigen configuration file.
//
// The file is TOML and supplies defaults for the CLI; flags always win over
// the file, and the file wins over the built-in defaults. Lookup order is an
// explicit --config path, then $XDG_CONFIG_HOME/asciigen/config.toml, then
// ~/.config/asciigen/config.toml. A missing default-location file is not an
// error.
//
// Example:
//
//	width = 100
//	output_dir = "art"
//	log_level = "debug"
//
//	[serve]
//	addr = ":9090"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"asciigen/pkg/errors"
)

// appName is the directory name used under the XDG config home.
const appName = "asciigen"

// Config holds file-supplied defaults for the CLI.
type Config struct {
	LogLevel   string `toml:"log_level"`
	Width      int    `toml:"width"`
	OutputDir  string `toml:"output_dir"`
	OutputFile string `toml:"output_file"`
	Serve      Serve  `toml:"serve"`
}

// Serve holds defaults for the HTTP serve mode.
type Serve struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Width:      120,
		OutputDir:  "output",
		OutputFile: "ascii_image.txt",
		Serve:      Serve{Addr: ":8080"},
	}
}

// DefaultPath returns the standard config file location
// ($XDG_CONFIG_HOME/asciigen/config.toml, falling back to ~/.config).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path layered over the built-in defaults.
//
// With an explicit path, a missing or malformed file is an error. With an
// empty path, the default location is consulted and silently skipped when
// absent, so a fresh install works without any config file.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		return cfg, nil
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}
