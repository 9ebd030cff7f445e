// Package overlay rasterizes angle annotations onto a photograph: the two
// arms of each angle, an interior arc, role-colored point markers, and a
// numbered label. The same renderer serves the interactive preview at
// display scale and the full-resolution annotated export.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"github.com/posekit/gonio/pkg/geometry"
)

// Style holds the annotation colors. Point colors follow the click order
// convention: first arm endpoint, vertex, second arm endpoint.
type Style struct {
	Point1  color.NRGBA
	Vertex  color.NRGBA
	Point2  color.NRGBA
	Segment color.NRGBA
	Arc     color.NRGBA
	LabelBG color.NRGBA
}

// DefaultStyle returns the standard annotation palette.
func DefaultStyle() Style {
	return Style{
		Point1:  color.NRGBA{227, 38, 54, 255},
		Vertex:  color.NRGBA{0, 255, 0, 255},
		Point2:  color.NRGBA{0, 170, 255, 255},
		Segment: color.NRGBA{255, 255, 255, 230},
		Arc:     color.NRGBA{255, 204, 0, 255},
		LabelBG: color.NRGBA{20, 20, 20, 220},
	}
}

// Angle is one committed measurement to draw, in original image
// coordinates.
type Angle struct {
	Name    string
	P1      geometry.Point
	Vertex  geometry.Point
	P2      geometry.Point
	Degrees float64
}

// Renderer draws annotations with a fixed style and a cached label font.
type Renderer struct {
	style Style
	fonts *faceCache
}

// NewRenderer creates a renderer with the default style.
func NewRenderer() (*Renderer, error) {
	return NewRendererWithStyle(DefaultStyle())
}

// NewRendererWithStyle creates a renderer with a custom style.
func NewRendererWithStyle(style Style) (*Renderer, error) {
	fonts, err := newFaceCache()
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	return &Renderer{style: style, fonts: fonts}, nil
}

// Render draws the committed angles and the pending points onto a copy of
// base. Point coordinates are multiplied by scale, so passing the display
// copy with its downscale factor yields the preview, and passing the
// original with scale 1 yields the export image. The input image is never
// modified.
func (r *Renderer) Render(base image.Image, angles []Angle, pending []geometry.Point, scale float64) (*image.NRGBA, error) {
	dst := imaging.Clone(base)

	m := metricsFor(dst)
	face, err := r.fonts.face(m.fontSize)
	if err != nil {
		return nil, fmt.Errorf("label font face: %w", err)
	}

	for _, a := range angles {
		r.drawAngleShapes(dst, a, scale, m)
	}
	r.drawPending(dst, pending, scale, m)

	// Labels go on top of everything drawn so far.
	for i, a := range angles {
		r.drawAngleLabel(dst, face, a, i, scale, m)
	}

	return dst, nil
}

// metrics are the pixel sizes of the annotation elements, derived from
// the smaller side of the target image so annotations stay proportional
// across resolutions.
type metrics struct {
	stroke    int
	marker    int
	arcRadius float64
	fontSize  int
}

func metricsFor(img *image.NRGBA) metrics {
	minSide := img.Bounds().Dx()
	if h := img.Bounds().Dy(); h < minSide {
		minSide = h
	}

	m := metrics{
		stroke:    int(math.Max(2, 0.004*float64(minSide))),
		marker:    int(math.Max(4, 0.008*float64(minSide))),
		arcRadius: math.Max(24, 0.05*float64(minSide)),
		fontSize:  int(0.024 * float64(minSide)),
	}
	if m.fontSize < 11 {
		m.fontSize = 11
	} else if m.fontSize > 26 {
		m.fontSize = 26
	}
	return m
}

func (r *Renderer) drawAngleShapes(dst *image.NRGBA, a Angle, scale float64, m metrics) {
	p1 := a.P1.Mul(scale)
	v := a.Vertex.Mul(scale)
	p2 := a.P2.Mul(scale)

	drawLine(dst, round(v.X), round(v.Y), round(p1.X), round(p1.Y), r.style.Segment, m.stroke)
	drawLine(dst, round(v.X), round(v.Y), round(p2.X), round(p2.Y), r.style.Segment, m.stroke)

	if radius := arcRadiusFor(p1, v, p2, m.arcRadius); radius > 0 {
		arc := geometry.ArcPoints(p1, v, p2, radius, 24)
		drawPolyline(dst, arc, r.style.Arc, m.stroke)
	}

	drawDisc(dst, round(p1.X), round(p1.Y), m.marker, r.style.Point1)
	drawDisc(dst, round(v.X), round(v.Y), m.marker, r.style.Vertex)
	drawDisc(dst, round(p2.X), round(p2.Y), m.marker, r.style.Point2)
}

func (r *Renderer) drawAngleLabel(dst *image.NRGBA, face font.Face, a Angle, index int, scale float64, m metrics) {
	v := a.Vertex.Mul(scale)
	radius := arcRadiusFor(a.P1.Mul(scale), v, a.P2.Mul(scale), m.arcRadius)
	if radius <= 0 {
		radius = m.arcRadius
	}

	offset := radius + float64(m.fontSize)
	bis := geometry.Bisector(a.P1, a.Vertex, a.P2)
	anchor := v.Add(bis.Mul(offset))
	if bis == (geometry.Point{}) {
		anchor = v.Sub(geometry.NewPoint(0, offset))
	}

	text := fmt.Sprintf("%d: %s %.1f°", index+1, a.Name, a.Degrees)
	drawLabel(dst, face, image.Point{X: round(anchor.X), Y: round(anchor.Y)}, text, r.style.Arc, r.style.LabelBG, 2)
}

// drawPending draws the partially collected measurement: markers in role
// colors and the arm segments that exist so far.
func (r *Renderer) drawPending(dst *image.NRGBA, pending []geometry.Point, scale float64, m metrics) {
	roleColors := [3]color.NRGBA{r.style.Point1, r.style.Vertex, r.style.Point2}

	if len(pending) >= 2 {
		a := pending[0].Mul(scale)
		v := pending[1].Mul(scale)
		drawLine(dst, round(v.X), round(v.Y), round(a.X), round(a.Y), r.style.Segment, m.stroke)
		if len(pending) == 3 {
			b := pending[2].Mul(scale)
			drawLine(dst, round(v.X), round(v.Y), round(b.X), round(b.Y), r.style.Segment, m.stroke)
		}
	}

	for i, p := range pending {
		if i > 2 {
			break
		}
		sp := p.Mul(scale)
		drawDisc(dst, round(sp.X), round(sp.Y), m.marker, roleColors[i])
	}
}

// arcRadiusFor caps the arc radius so it stays clear of the arm
// endpoints. A zero return means the arms are too short for an arc.
func arcRadiusFor(p1, v, p2 geometry.Point, preferred float64) float64 {
	shortest := math.Min(v.Distance(p1), v.Distance(p2))
	radius := math.Min(preferred, 0.8*shortest)
	if radius < 6 {
		return 0
	}
	return radius
}
