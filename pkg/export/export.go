// Package export writes the annotation artifacts for one image: the JSON
// angle record consumed by the pose scorer and the annotated image copy.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/posekit/gonio/pkg/imgio"
	"github.com/posekit/gonio/pkg/log"
	"github.com/posekit/gonio/pkg/pose"
)

// Exporter derives output paths from the source image name and writes the
// record and annotated image next to it, or into a fixed directory.
type Exporter struct {
	outDir  string
	quality int
	logger  log.Logger
}

// New creates an exporter. An empty outDir places the artifacts in the
// source image's directory. The quality setting applies to JPEG and WebP
// output.
func New(outDir string, quality int, logger log.Logger) *Exporter {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Exporter{outDir: outDir, quality: quality, logger: logger}
}

// Paths returns the record and annotated image paths for the given source
// image. For photo.jpg these are photo_angles.json and photo_annotated.jpg,
// keeping the source extension for the annotated copy.
func (e *Exporter) Paths(imagePath string) (recordPath, annotatedPath string) {
	dir := e.outDir
	if dir == "" {
		dir = filepath.Dir(imagePath)
	}
	ext := filepath.Ext(imagePath)
	base := strings.TrimSuffix(filepath.Base(imagePath), ext)

	recordPath = filepath.Join(dir, base+"_angles.json")
	annotatedPath = filepath.Join(dir, base+"_annotated"+ext)
	return recordPath, annotatedPath
}

// Export validates and writes the record plus the annotated image and
// returns the two written paths.
func (e *Exporter) Export(imagePath string, rec *pose.Record, annotated image.Image) (recordPath, annotatedPath string, err error) {
	if err := rec.Validate(); err != nil {
		return "", "", err
	}

	recordPath, annotatedPath = e.Paths(imagePath)
	if e.outDir != "" {
		if err := os.MkdirAll(e.outDir, 0755); err != nil {
			return "", "", fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := pose.Save(recordPath, rec); err != nil {
		return "", "", err
	}
	if err := imgio.Save(annotated, annotatedPath, e.quality); err != nil {
		return "", "", err
	}

	e.logger.Info("export complete",
		log.String("record", recordPath),
		log.String("annotated", annotatedPath),
		log.Int("measurements", rec.TotalAngles))
	return recordPath, annotatedPath, nil
}
