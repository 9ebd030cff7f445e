package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types: durations as
// strings and booleans as pointers so absence is distinguishable from
// false.
type FileConfig struct {
	OutDir        string  `toml:"out_dir"`
	MaxDisplay    int     `toml:"max_display"`
	Tolerance     float64 `toml:"tolerance"`
	Weight        float64 `toml:"weight"`
	JPEGQuality   int     `toml:"jpeg_quality"`
	Watch         *bool   `toml:"watch"`
	WatchDebounce string  `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// <user config dir>/gonio/config.toml, or "" when no user config
// directory is available.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gonio", "config.toml")
	}
	return ""
}

// ApplyFileConfig overlays file values onto cfg, skipping any setting
// whose flag was given on the command line.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out-dir", fc.OutDir, &cfg.OutDir)
	s.setInt("max-display", fc.MaxDisplay, &cfg.MaxDisplay)
	s.setFloat("tolerance", fc.Tolerance, &cfg.Tolerance)
	s.setFloat("weight", fc.Weight, &cfg.Weight)
	s.setInt("jpeg-quality", fc.JPEGQuality, &cfg.JPEGQuality)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	return s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
