package overlay

import (
	"image"
	"image/color"

	"github.com/posekit/gonio/pkg/geometry"
)

// blendPix writes one pixel with source-over alpha blending. Fully opaque
// colors are written directly. Out-of-bounds coordinates are ignored.
func blendPix(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return
	}
	i := img.PixOffset(x, y)
	if c.A == 255 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
		return
	}

	a := uint32(c.A)
	inv := 255 - a
	img.Pix[i+0] = uint8((uint32(c.R)*a + uint32(img.Pix[i+0])*inv) / 255)
	img.Pix[i+1] = uint8((uint32(c.G)*a + uint32(img.Pix[i+1])*inv) / 255)
	img.Pix[i+2] = uint8((uint32(c.B)*a + uint32(img.Pix[i+2])*inv) / 255)
	img.Pix[i+3] = uint8(255 - inv*uint32(255-img.Pix[i+3])/255)
}

// drawDisc draws a filled circle centered at (cx, cy).
func drawDisc(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				blendPix(img, cx+dx, cy+dy, c)
			}
		}
	}
}

// drawLine draws a line using Bresenham's algorithm, stamping a square of
// the given thickness at every step.
func drawLine(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA, thickness int) {
	half := thickness / 2
	if half < 0 {
		half = 0
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				blendPix(img, x1+ox, y1+oy, c)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawPolyline connects consecutive points with line segments.
func drawPolyline(img *image.NRGBA, points []geometry.Point, c color.NRGBA, thickness int) {
	for i := 1; i < len(points); i++ {
		drawLine(img,
			round(points[i-1].X), round(points[i-1].Y),
			round(points[i].X), round(points[i].Y),
			c, thickness)
	}
}

// fillRect fills a rectangle, clipped to the image bounds.
func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			blendPix(img, x, y, c)
		}
	}
}

// drawRectOutline draws a rectangle border of the given width inside r.
func drawRectOutline(img *image.NRGBA, r image.Rectangle, c color.NRGBA, width int) {
	for s := 0; s < width; s++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			blendPix(img, x, r.Min.Y+s, c)
			blendPix(img, x, r.Max.Y-1-s, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			blendPix(img, r.Min.X+s, y, c)
			blendPix(img, r.Max.X-1-s, y, c)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
