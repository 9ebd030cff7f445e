package app

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/posekit/gonio/pkg/geometry"
)

// ImageView shows the annotated display frame and reports taps in original
// image coordinates. The frame is a possibly downscaled copy of the source
// image; tap positions are divided by the display scale and clamped to the
// source bounds before they reach the callback.
type ImageView struct {
	widget.BaseWidget
	frame  *canvas.Image
	dispW  float32
	dispH  float32
	scale  float64
	imageW float64
	imageH float64
	onTap  func(p geometry.Point)
}

// NewImageView creates a view for a frame rendered at the given scale from
// a source image of imageW x imageH pixels.
func NewImageView(frame image.Image, scale float64, imageW, imageH int) *ImageView {
	v := &ImageView{
		frame:  canvas.NewImageFromImage(frame),
		scale:  scale,
		imageW: float64(imageW),
		imageH: float64(imageH),
	}
	v.frame.FillMode = canvas.ImageFillContain
	bounds := frame.Bounds()
	v.dispW = float32(bounds.Dx())
	v.dispH = float32(bounds.Dy())
	v.ExtendBaseWidget(v)
	return v
}

// SetOnTap sets the callback invoked with each tap, in original image
// coordinates.
func (v *ImageView) SetOnTap(callback func(p geometry.Point)) {
	v.onTap = callback
}

// SetFrame replaces the displayed frame.
func (v *ImageView) SetFrame(frame image.Image) {
	v.frame.Image = frame
	bounds := frame.Bounds()
	v.dispW = float32(bounds.Dx())
	v.dispH = float32(bounds.Dy())
	v.Refresh()
}

// SetMapping updates the tap coordinate mapping after the source image has
// been replaced.
func (v *ImageView) SetMapping(scale float64, imageW, imageH int) {
	v.scale = scale
	v.imageW = float64(imageW)
	v.imageH = float64(imageH)
}

// Tapped converts the tap position to original image coordinates and hands
// the point to the tap callback.
func (v *ImageView) Tapped(event *fyne.PointEvent) {
	if v.onTap == nil {
		return
	}
	x := clampFloat(float64(event.Position.X)/v.scale, 0, v.imageW-1)
	y := clampFloat(float64(event.Position.Y)/v.scale, 0, v.imageH-1)
	v.onTap(geometry.NewPoint(x, y))
}

// CreateRenderer creates the renderer for the widget.
func (v *ImageView) CreateRenderer() fyne.WidgetRenderer {
	return &imageViewRenderer{view: v}
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// imageViewRenderer implements fyne.WidgetRenderer
type imageViewRenderer struct {
	view *ImageView
}

func (r *imageViewRenderer) Layout(size fyne.Size) {
	r.view.frame.Resize(size)
}

func (r *imageViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.view.dispW, r.view.dispH)
}

func (r *imageViewRenderer) Refresh() {
	canvas.Refresh(r.view.frame)
}

func (r *imageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.frame}
}

func (r *imageViewRenderer) Destroy() {}
