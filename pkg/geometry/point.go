package geometry

import "math"

// Point represents a 2D point or vector in image coordinates.
type Point struct {
	X, Y float64
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{
		X: p.X * scalar,
		Y: p.Y * scalar,
	}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the scalar cross product of two vectors.
// Positive when other lies counter-clockwise from p in a Y-up frame;
// the sign is flipped on a Y-down pixel grid, which cancels out as long
// as every caller stays in the same frame.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return p.Mul(1.0 / length)
}

// Min returns a point with the minimum components of two points
func (p Point) Min(other Point) Point {
	return Point{
		X: math.Min(p.X, other.X),
		Y: math.Min(p.Y, other.Y),
	}
}

// Max returns a point with the maximum components of two points
func (p Point) Max(other Point) Point {
	return Point{
		X: math.Max(p.X, other.X),
		Y: math.Max(p.Y, other.Y),
	}
}
