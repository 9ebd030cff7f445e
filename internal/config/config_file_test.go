package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		expected   Config
	}{
		{
			name: "applies all values over defaults",
			fileConfig: FileConfig{
				OutDir:        "/annotations",
				MaxDisplay:    1600,
				Tolerance:     20,
				Weight:        2,
				JPEGQuality:   85,
				Watch:         &falseVal,
				WatchDebounce: "500ms",
			},
			changed: map[string]bool{},
			expected: Config{
				OutDir:        "/annotations",
				MaxDisplay:    1600,
				Tolerance:     20,
				Weight:        2,
				JPEGQuality:   85,
				Watch:         false,
				WatchDebounce: 500 * time.Millisecond,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				MaxDisplay: 1600,
				Tolerance:  20,
			},
			changed: map[string]bool{"max-display": true},
			expected: Config{
				MaxDisplay:    1200, // flag wins, file value skipped
				Tolerance:     20,
				Weight:        1.0,
				JPEGQuality:   92,
				Watch:         true,
				WatchDebounce: 300 * time.Millisecond,
			},
		},
		{
			name:       "empty file keeps defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			expected:   Default(),
		},
	}

	for _, tt := range tests {
		cfg := Default()
		if err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed); err != nil {
			t.Fatalf("%s: ApplyFileConfig failed: %v", tt.name, err)
		}
		if cfg != tt.expected {
			t.Errorf("%s failed: expected %+v, got %+v", tt.name, tt.expected, cfg)
		}
	}
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	cfg := Default()
	fc := FileConfig{WatchDebounce: "not-a-duration"}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("expected error for invalid duration, got nil")
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
out_dir = "/annotations"
max_display = 1600
tolerance = 12.5
jpeg_quality = 80
watch = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}

	if fc.OutDir != "/annotations" {
		t.Errorf("OutDir failed: expected /annotations, got %q", fc.OutDir)
	}
	if fc.MaxDisplay != 1600 {
		t.Errorf("MaxDisplay failed: expected 1600, got %d", fc.MaxDisplay)
	}
	if fc.Tolerance != 12.5 {
		t.Errorf("Tolerance failed: expected 12.5, got %v", fc.Tolerance)
	}
	if fc.Watch == nil || *fc.Watch {
		t.Errorf("Watch failed: expected false, got %v", fc.Watch)
	}
	if fc.WatchDebounce != "" {
		t.Errorf("WatchDebounce failed: expected empty, got %q", fc.WatchDebounce)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("max_display = ["), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected error for malformed TOML, got nil")
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if FileExists(path) {
		t.Error("FileExists failed: expected false for missing file")
	}
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("FileExists failed: expected true for existing file")
	}
}
