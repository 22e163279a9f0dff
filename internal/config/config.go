// Package config loads the user configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "vimusic"

type Config struct {
	DefaultFolder string `koanf:"default_folder"`
	LogFile       string `koanf:"log_file"`
	Notifications bool   `koanf:"notifications"` // desktop notification on track change
	MPRIS         *bool  `koanf:"mpris"`         // media-key bridge (default: true)

	// Keybindings maps chords to action names, e.g. "Ctrl+n" = "next_track".
	Keybindings map[string]string `koanf:"keybindings"`

	// Paths lists the files that were actually read.
	Paths []string `koanf:"-"`
}

// Load reads the config files in priority order (last wins). A non-empty
// explicit path replaces the search list.
func Load(explicit string) (*Config, error) {
	// Chords such as "." are valid keybinding keys, so "." cannot delimit.
	k := koanf.New("::")

	configPaths := getConfigPaths()
	if explicit != "" {
		configPaths = []string{expandPath(explicit)}
	}

	var loaded []string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
			loaded = append(loaded, path)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Paths = loaded

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.Keybindings == nil {
		cfg.Keybindings = map[string]string{}
	}

	return cfg, nil
}

// LoadKeybindings re-reads only the keybindings table.
func LoadKeybindings(explicit string) (map[string]string, error) {
	cfg, err := Load(explicit)
	if err != nil {
		return nil, err
	}
	return cfg.Keybindings, nil
}

// MPRISEnabled reports whether the MPRIS bridge should start.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// WatchPaths returns the files whose changes should trigger a reload: every
// candidate path, whether or not it exists yet.
func WatchPaths(explicit string) []string {
	if explicit != "" {
		return []string{expandPath(explicit)}
	}
	return getConfigPaths()
}

// DefaultLogFile returns the log path under the XDG state directory.
func DefaultLogFile() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
