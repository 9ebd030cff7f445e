package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// faceCache builds and reuses font faces per pixel size.
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache() (*faceCache, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &faceCache{font: f, faces: make(map[int]font.Face)}, nil
}

func (fc *faceCache) face(size int) (font.Face, error) {
	if f, ok := fc.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fc.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	fc.faces[size] = f
	return f, nil
}

// drawLabel draws text in a dark backdrop box with a colored border,
// centered horizontally on the anchor. The box is shifted as needed to
// stay inside the image. It returns the drawn rectangle.
func drawLabel(img *image.NRGBA, face font.Face, anchor image.Point, text string, textCol, bgCol color.NRGBA, border int) image.Rectangle {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textCol),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	padding := height / 3
	if padding < 3 {
		padding = 3
	}

	box := image.Rect(
		anchor.X-width/2-padding,
		anchor.Y-height/2-padding,
		anchor.X+width/2+padding,
		anchor.Y+height/2+padding,
	)
	box = shiftIntoBounds(box, img.Rect)

	fillRect(img, box, bgCol)
	drawRectOutline(img, box, textCol, border)

	d.Dot = fixed.P(box.Min.X+padding, box.Min.Y+padding+ascent)
	d.DrawString(text)

	return box
}

// shiftIntoBounds moves r so that it lies within bounds where possible.
// Boxes larger than the bounds keep their top-left corner visible.
func shiftIntoBounds(r, bounds image.Rectangle) image.Rectangle {
	if r.Max.X > bounds.Max.X {
		r = r.Add(image.Point{X: bounds.Max.X - r.Max.X})
	}
	if r.Max.Y > bounds.Max.Y {
		r = r.Add(image.Point{Y: bounds.Max.Y - r.Max.Y})
	}
	if r.Min.X < bounds.Min.X {
		r = r.Add(image.Point{X: bounds.Min.X - r.Min.X})
	}
	if r.Min.Y < bounds.Min.Y {
		r = r.Add(image.Point{Y: bounds.Min.Y - r.Min.Y})
	}
	return r
}
