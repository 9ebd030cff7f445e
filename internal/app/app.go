// Package app wires the fyne window, the image canvas, the keyboard and
// the metadata dialog to the measurement session.
package app

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/posekit/gonio/internal/config"
	"github.com/posekit/gonio/internal/session"
	"github.com/posekit/gonio/pkg/export"
	"github.com/posekit/gonio/pkg/geometry"
	"github.com/posekit/gonio/pkg/imgio"
	"github.com/posekit/gonio/pkg/log"
	"github.com/posekit/gonio/pkg/overlay"
	"github.com/posekit/gonio/pkg/pose"
	"github.com/posekit/gonio/pkg/watcher"
)

const sidebarWidth = 300

// App holds the annotator window state. All session mutation happens on
// the fyne event goroutine; the watcher hands reloads back via fyne.Do.
type App struct {
	cfg       *config.Config
	logger    log.Logger
	imagePath string

	window  fyne.Window
	view    *ImageView
	sidebar *sidebar

	sess     *session.Session
	renderer *overlay.Renderer
	exporter *export.Exporter

	source  image.Image
	display *image.NRGBA
	scale   float64
}

// Run opens the annotator window for the given image and blocks until the
// operator quits. Errors before the window opens are returned; later
// failures are reported in the window and the event loop continues.
func Run(imagePath string, cfg *config.Config, logger log.Logger) error {
	source, err := imgio.Load(imagePath)
	if err != nil {
		return err
	}

	renderer, err := overlay.NewRenderer()
	if err != nil {
		return err
	}

	display, scale := imgio.Fit(source, cfg.MaxDisplay)
	bounds := source.Bounds()
	logger.Info("image loaded",
		log.String("path", imagePath),
		log.Int("width", bounds.Dx()),
		log.Int("height", bounds.Dy()),
		log.Float64("display_scale", scale))

	fyneApp := fyneapp.New()
	window := fyneApp.NewWindow("Gonio - Pose Angle Annotator")

	a := &App{
		cfg:       cfg,
		logger:    logger,
		imagePath: imagePath,
		window:    window,
		sess:      session.New(),
		renderer:  renderer,
		exporter:  export.New(cfg.OutDir, cfg.JPEGQuality, logger),
		source:    source,
		display:   display,
		scale:     scale,
	}

	a.view = NewImageView(display, scale, bounds.Dx(), bounds.Dy())
	a.view.SetOnTap(a.handleTap)

	a.setupUI()

	window.Canvas().SetOnTypedRune(a.handleRune)
	window.Canvas().SetOnTypedKey(a.handleKey)

	if cfg.Watch {
		fw, err := watcher.New(imagePath, cfg.WatchDebounce, logger)
		if err != nil {
			logger.Warn("file watching disabled", log.Err(err))
		} else {
			fw.Start(func(string) {
				fyne.Do(a.reloadImage)
			})
			defer fw.Close()
		}
	}

	a.refresh()

	width := a.view.dispW + sidebarWidth + 48
	height := a.view.dispH + 48
	if height < 480 {
		height = 480
	}
	window.Resize(fyne.NewSize(width, height))
	window.ShowAndRun()
	return nil
}

// setupUI builds the sidebar and places it next to the image canvas.
func (a *App) setupUI() {
	a.sidebar = &sidebar{
		imageLabel: widget.NewLabel(a.imageInfo()),
		phaseLabel: widget.NewLabel(""),
		countLabel: widget.NewLabel(""),
		listLabel:  widget.NewLabel(""),
	}
	a.sidebar.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.sidebar.listLabel.Wrapping = fyne.TextWrapWord

	resetButton := widget.NewButton("Reset points (r)", func() {
		a.resetPending()
	})
	saveButton := widget.NewButton("Save (s)", func() {
		a.doExport()
	})
	quitButton := widget.NewButton("Quit (q)", func() {
		a.quit()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click three points: first arm, vertex, second arm\n" +
			"• Backspace removes the last pending point\n" +
			"• r discards the pending points\n" +
			"• s writes the JSON record and the annotated image\n" +
			"• q quits without saving",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Image:"),
		widget.NewSeparator(),
		a.sidebar.imageLabel,
		widget.NewSeparator(),
		widget.NewLabel("Next Step:"),
		a.sidebar.phaseLabel,
		widget.NewSeparator(),
		widget.NewLabel("Recorded Angles:"),
		widget.NewSeparator(),
		a.sidebar.countLabel,
		a.sidebar.listLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		resetButton,
		saveButton,
		quitButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(sidebarWidth, 0))

	content := container.NewBorder(
		nil,
		nil,
		nil,
		infoScroll,
		container.NewScroll(container.NewCenter(a.view)),
	)

	a.window.SetContent(content)
}

// imageInfo formats the source image line for the sidebar.
func (a *App) imageInfo() string {
	bounds := a.source.Bounds()
	return fmt.Sprintf("%s\n%d x %d px\nDisplay scale: %.2f",
		filepath.Base(a.imagePath), bounds.Dx(), bounds.Dy(), a.scale)
}

// handleTap feeds one clicked point into the session and opens the
// metadata dialog after the third click.
func (a *App) handleTap(p geometry.Point) {
	phase, err := a.sess.AddPending(p)
	if err != nil {
		// Three points already pending, the click has no effect.
		a.logger.Debug("click ignored", log.String("phase", phase.String()))
		return
	}
	a.logger.Debug("point added",
		log.Float64("x", p.X),
		log.Float64("y", p.Y),
		log.String("phase", phase.String()))
	a.refresh()

	if phase != session.PhaseAwaitingMetadata {
		return
	}

	angle, err := a.sess.PendingAngle()
	if err != nil {
		a.discardDegenerate(err)
		return
	}
	a.showMetadataDialog(angle)
}

// handleRune dispatches the single-key commands. Keys reach this handler
// only while no dialog entry holds focus.
func (a *App) handleRune(r rune) {
	switch r {
	case 'r':
		a.resetPending()
	case 's':
		a.doExport()
	case 'q':
		a.quit()
	}
}

// handleKey removes the most recent pending point on Backspace.
func (a *App) handleKey(event *fyne.KeyEvent) {
	if event.Name == fyne.KeyBackspace {
		a.undoPending()
	}
}

// resetPending discards the in-progress measurement.
func (a *App) resetPending() {
	if dropped := a.sess.ResetPending(); dropped > 0 {
		a.logger.Info("pending points discarded", log.Int("dropped", dropped))
	}
	a.refresh()
}

// undoPending removes the most recent pending point.
func (a *App) undoPending() {
	if a.sess.UndoPending() {
		a.logger.Debug("pending point removed")
		a.refresh()
	}
}

// discardDegenerate resets the pending points after a degenerate triple
// and tells the operator why.
func (a *App) discardDegenerate(err error) {
	a.logger.Warn("points discarded", log.Err(err))
	a.sess.ResetPending()
	a.refresh()
	dialog.ShowError(fmt.Errorf("cannot measure: %w", err), a.window)
}

// commitPending turns the pending triple plus metadata into a committed
// measurement.
func (a *App) commitPending(meta session.Metadata) {
	m, err := a.sess.TryCommit(meta)
	if err != nil {
		if errors.Is(err, geometry.ErrDegenerateInput) {
			a.discardDegenerate(err)
			return
		}
		// The entry validators should have caught this; ask again.
		a.logger.Warn("metadata rejected", log.Err(err))
		if angle, angleErr := a.sess.PendingAngle(); angleErr == nil {
			a.showMetadataDialog(angle)
		}
		return
	}
	a.logger.Info("angle recorded",
		log.String("name", m.Name),
		log.Float64("degrees", m.AngleDegrees),
		log.Int("total", a.sess.Count()))
	a.refresh()
}

// doExport writes the record and the full-resolution annotated image, then
// prints the pose-definition snippet to stdout.
func (a *App) doExport() {
	rec := pose.NewRecord(a.imagePath, a.poseMeasurements())

	annotated, err := a.renderer.Render(a.source, a.overlayAngles(), nil, 1.0)
	if err != nil {
		a.logger.Error("annotated render failed", log.Err(err))
		dialog.ShowError(err, a.window)
		return
	}

	if _, _, err := a.exporter.Export(a.imagePath, rec, annotated); err != nil {
		a.logger.Error("export failed", log.Err(err))
		dialog.ShowError(err, a.window)
		return
	}

	if err := pose.WriteSnippet(os.Stdout, rec); err != nil {
		a.logger.Warn("snippet write failed", log.Err(err))
	}
}

// quit closes the window without saving.
func (a *App) quit() {
	a.logger.Info("quit without saving", log.Int("recorded", a.sess.Count()))
	a.window.Close()
}

// reloadImage re-reads the source image after the watcher reports a
// change. The session and its recorded points are kept.
func (a *App) reloadImage() {
	source, err := imgio.Load(a.imagePath)
	if err != nil {
		a.logger.Warn("image reload failed", log.Err(err))
		return
	}

	oldBounds := a.source.Bounds()
	newBounds := source.Bounds()
	if oldBounds.Dx() != newBounds.Dx() || oldBounds.Dy() != newBounds.Dy() {
		a.logger.Warn("image dimensions changed, recorded points keep their coordinates",
			log.Int("old_width", oldBounds.Dx()),
			log.Int("old_height", oldBounds.Dy()),
			log.Int("new_width", newBounds.Dx()),
			log.Int("new_height", newBounds.Dy()))
	}

	a.source = source
	a.display, a.scale = imgio.Fit(source, a.cfg.MaxDisplay)
	a.view.SetMapping(a.scale, newBounds.Dx(), newBounds.Dy())
	a.sidebar.imageLabel.SetText(a.imageInfo())
	a.logger.Info("image reloaded", log.String("path", a.imagePath))
	a.refresh()
}

// refresh redraws the display frame and the sidebar.
func (a *App) refresh() {
	frame, err := a.renderer.Render(a.display, a.overlayAngles(), a.sess.Pending(), a.scale)
	if err != nil {
		a.logger.Error("render failed", log.Err(err))
		return
	}
	a.view.SetFrame(frame)
	a.sidebar.update(a.sess)
}

// overlayAngles converts the committed measurements for the renderer.
func (a *App) overlayAngles() []overlay.Angle {
	measurements := a.sess.Measurements()
	angles := make([]overlay.Angle, len(measurements))
	for i, m := range measurements {
		angles[i] = overlay.Angle{
			Name:    m.Name,
			P1:      m.Points[0],
			Vertex:  m.Points[1],
			P2:      m.Points[2],
			Degrees: m.AngleDegrees,
		}
	}
	return angles
}

// poseMeasurements converts the committed measurements to record entries.
func (a *App) poseMeasurements() []pose.AngleDefinition {
	measurements := a.sess.Measurements()
	defs := make([]pose.AngleDefinition, len(measurements))
	for i, m := range measurements {
		defs[i] = pose.NewAngleDefinition(m.Name,
			m.Points[0], m.Points[1], m.Points[2],
			m.AngleDegrees, m.Tolerance, m.Weight)
	}
	return defs
}
