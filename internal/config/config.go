// Package config assembles the annotator settings from defaults, an
// optional TOML file, and command line flags. Flags win over the file and
// the file wins over defaults. The process environment is never consulted.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the resolved annotator configuration.
type Config struct {
	// OutDir receives the exported record and annotated image. Empty
	// means next to the source image.
	OutDir string

	// MaxDisplay caps the longer side of the displayed image in pixels.
	// Larger photographs are downscaled for display only.
	MaxDisplay int `validate:"gt=0"`

	// Tolerance and Weight are the metadata defaults offered when the
	// operator leaves the dialog fields blank.
	Tolerance float64 `validate:"gt=0"`
	Weight    float64 `validate:"gt=0"`

	// JPEGQuality applies to JPEG and WebP annotated output.
	JPEGQuality int `validate:"gte=1,lte=100"`

	// Watch reloads the image when it changes on disk.
	Watch         bool
	WatchDebounce time.Duration `validate:"gt=0"`

	Verbose bool
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDisplay:    1200,
		Tolerance:     15.0,
		Weight:        1.0,
		JPEGQuality:   92,
		Watch:         true,
		WatchDebounce: 300 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configSetter applies file values while respecting flag precedence: a
// value is skipped when the corresponding flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
