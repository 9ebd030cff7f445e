// Package imgio loads and saves the photographs the annotator works on.
// JPEG, PNG, and WebP are supported on both the read and write side.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Registers the WebP decoder for imaging.Open.
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// the supported image formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedFormat reports whether the file extension is a format the
// annotator can read and write.
func SupportedFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// Load reads an image from disk and returns it as NRGBA, which is what the
// overlay drawing code operates on.
func Load(path string) (*image.NRGBA, error) {
	if !SupportedFormat(path) {
		return nil, fmt.Errorf("%w: %q (want .jpg, .jpeg, .png or .webp)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	img, err := imaging.Open(path)
	if err == nil {
		return imaging.Clone(img), nil
	}

	// Some WebP variants are rejected by the registered decoder but
	// handled by the chai2010 implementation.
	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("open image: %w", ferr)
	}
	defer f.Close()

	if wimg, werr := webp.Decode(f); werr == nil {
		return imaging.Clone(wimg), nil
	}

	return nil, fmt.Errorf("decode image %s: %w", path, err)
}

// Save writes an image to disk, choosing the encoder from the file
// extension. The quality setting applies to JPEG and WebP output.
func Save(img image.Image, path string, quality int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		defer f.Close()
		opts := &webp.Options{Lossless: false, Quality: float32(quality)}
		if err := webp.Encode(f, img, opts); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
		return nil
	case ".png":
		return imaging.Save(img, path)
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Fit returns a copy of img downscaled so that neither side exceeds
// maxDim, along with the applied scale factor. Images already within the
// limit are cloned unchanged with a scale of 1. The aspect ratio is always
// preserved.
func Fit(img image.Image, maxDim int) (*image.NRGBA, float64) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return imaging.Clone(img), 1.0
	}

	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos), float64(maxDim) / float64(w)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos), float64(maxDim) / float64(h)
}
