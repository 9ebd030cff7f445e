package imgio

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image with a bright center region
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x > width/3 && x < 2*width/3 && y > height/3 && y < 2*height/3 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.NRGBA{64, 64, 64, 255})
			}
		}
	}

	return img
}

func TestSaveLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	original := createTestImage(80, 60)

	if err := Save(original, path, 90); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := loaded.Bounds(); got.Dx() != 80 || got.Dy() != 60 {
		t.Errorf("dimensions failed: expected 80x60, got %dx%d", got.Dx(), got.Dy())
	}
	if got := loaded.NRGBAAt(40, 30); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("center pixel failed: expected white, got %v", got)
	}
}

func TestSaveLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jpg")
	original := createTestImage(80, 60)

	if err := Save(original, path, 90); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := loaded.Bounds(); got.Dx() != 80 || got.Dy() != 60 {
		t.Errorf("dimensions failed: expected 80x60, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestSaveLoadWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.webp")
	original := createTestImage(80, 60)

	if err := Save(original, path, 90); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := loaded.Bounds(); got.Dx() != 80 || got.Dy() != 60 {
		t.Errorf("dimensions failed: expected 80x60, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "scan.gif"))

	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestSupportedFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.png", true},
		{"a.webp", true},
		{"a.gif", false},
		{"a.bmp", false},
		{"a", false},
	}

	for _, tt := range tests {
		if got := SupportedFormat(tt.path); got != tt.expected {
			t.Errorf("SupportedFormat(%q) failed: expected %v, got %v", tt.path, tt.expected, got)
		}
	}
}

func TestFitDownscalesWide(t *testing.T) {
	img := createTestImage(2400, 1200)

	fitted, scale := Fit(img, 1200)

	if got := fitted.Bounds(); got.Dx() != 1200 || got.Dy() != 600 {
		t.Errorf("dimensions failed: expected 1200x600, got %dx%d", got.Dx(), got.Dy())
	}
	if scale != 0.5 {
		t.Errorf("scale failed: expected 0.5, got %v", scale)
	}
}

func TestFitDownscalesTall(t *testing.T) {
	img := createTestImage(600, 2400)

	fitted, scale := Fit(img, 1200)

	if got := fitted.Bounds(); got.Dx() != 300 || got.Dy() != 1200 {
		t.Errorf("dimensions failed: expected 300x1200, got %dx%d", got.Dx(), got.Dy())
	}
	if scale != 0.5 {
		t.Errorf("scale failed: expected 0.5, got %v", scale)
	}
}

func TestFitKeepsSmallImages(t *testing.T) {
	img := createTestImage(800, 600)

	fitted, scale := Fit(img, 1200)

	if got := fitted.Bounds(); got.Dx() != 800 || got.Dy() != 600 {
		t.Errorf("dimensions failed: expected 800x600, got %dx%d", got.Dx(), got.Dy())
	}
	if scale != 1.0 {
		t.Errorf("scale failed: expected 1.0, got %v", scale)
	}
}
