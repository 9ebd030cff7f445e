package geometry

import (
	"math"
	"testing"
)

func TestPointAdd(t *testing.T) {
	p1 := NewPoint(1, 2)
	p2 := NewPoint(4, 5)
	result := p1.Add(p2)

	expected := NewPoint(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestPointSub(t *testing.T) {
	p1 := NewPoint(5, 7)
	p2 := NewPoint(1, 2)
	result := p1.Sub(p2)

	expected := NewPoint(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestPointLength(t *testing.T) {
	p := NewPoint(3, 4)
	length := p.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestPointDistance(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(3, 4)
	distance := p1.Distance(p2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestPointNormalize(t *testing.T) {
	p := NewPoint(3, 4)
	normalized := p.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestPointNormalizeZero(t *testing.T) {
	p := NewPoint(0, 0).Normalize()

	if p != (Point{}) {
		t.Errorf("Normalize of zero vector failed: expected %v, got %v", Point{}, p)
	}
}

func TestPointCross(t *testing.T) {
	p1 := NewPoint(1, 0)
	p2 := NewPoint(0, 1)
	result := p1.Cross(p2)

	expected := 1.0
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}

	if got := p2.Cross(p1); math.Abs(got+expected) > 1e-10 {
		t.Errorf("Cross sign failed: expected %v, got %v", -expected, got)
	}
}

func TestPointDot(t *testing.T) {
	p1 := NewPoint(1, 2)
	p2 := NewPoint(4, 5)
	result := p1.Dot(p2)

	expected := 14.0 // 1*4 + 2*5 = 14
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestPointMinMax(t *testing.T) {
	p1 := NewPoint(1, 7)
	p2 := NewPoint(4, 2)

	if got := p1.Min(p2); got != NewPoint(1, 2) {
		t.Errorf("Min failed: expected %v, got %v", NewPoint(1, 2), got)
	}
	if got := p1.Max(p2); got != NewPoint(4, 7) {
		t.Errorf("Max failed: expected %v, got %v", NewPoint(4, 7), got)
	}
}
