package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateInput is returned when an angle is requested for a
// configuration that has no defined angle, such as an arm of zero length.
var ErrDegenerateInput = errors.New("degenerate angle input")

// AngleAtVertex returns the interior angle in degrees formed at vertex by
// the arms vertex->p1 and vertex->p2.
//
// The result is always in [0, 180]: 0 for coincident arms, 180 for opposite
// arms. The angle is unsigned, so swapping p1 and p2 yields the same value,
// and it is invariant under translation of all three points.
//
// Returns ErrDegenerateInput if either arm has zero length, i.e. p1 or p2
// coincides exactly with the vertex.
func AngleAtVertex(p1, vertex, p2 Point) (float64, error) {
	a := p1.Sub(vertex)
	b := p2.Sub(vertex)

	la := a.Length()
	if la == 0 {
		return 0, fmt.Errorf("%w: first point coincides with vertex", ErrDegenerateInput)
	}
	lb := b.Length()
	if lb == 0 {
		return 0, fmt.Errorf("%w: second point coincides with vertex", ErrDegenerateInput)
	}

	// Rounding can push the cosine a hair outside [-1, 1] for collinear
	// arms, which would make Acos return NaN.
	cos := a.Dot(b) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180.0 / math.Pi, nil
}

// ArcPoints samples the interior arc of the angle at vertex, from the
// direction of p1 towards the direction of p2, at the given radius.
// It returns steps+1 points including both endpoints, or nil when the
// configuration is degenerate, the radius is not positive, or steps < 1.
func ArcPoints(p1, vertex, p2 Point, radius float64, steps int) []Point {
	if radius <= 0 || steps < 1 {
		return nil
	}

	a := p1.Sub(vertex)
	b := p2.Sub(vertex)
	if a.Length() == 0 || b.Length() == 0 {
		return nil
	}

	start := math.Atan2(a.Y, a.X)
	// Signed sweep from a to b in (-pi, pi]; its magnitude is the interior
	// angle, so walking start+t*sweep stays on the interior side.
	sweep := math.Atan2(a.Cross(b), a.Dot(b))

	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		theta := start + sweep*float64(i)/float64(steps)
		points = append(points, Point{
			X: vertex.X + radius*math.Cos(theta),
			Y: vertex.Y + radius*math.Sin(theta),
		})
	}
	return points
}

// Bisector returns the unit vector from vertex into the interior of the
// angle, which is where labels and arc annotations sit. For a straight
// angle the interior collapses, so a perpendicular of the first arm is
// returned instead. The zero vector is returned for degenerate arms.
func Bisector(p1, vertex, p2 Point) Point {
	a := p1.Sub(vertex).Normalize()
	b := p2.Sub(vertex).Normalize()
	if a == (Point{}) || b == (Point{}) {
		return Point{}
	}

	sum := a.Add(b)
	if sum.Length() < 1e-9 {
		return Point{X: -a.Y, Y: a.X}
	}
	return sum.Normalize()
}
