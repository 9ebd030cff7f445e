package session

import (
	"errors"
	"math"
	"testing"

	"github.com/posekit/gonio/pkg/geometry"
)

func addThree(t *testing.T, s *Session) {
	t.Helper()
	for _, p := range []geometry.Point{
		geometry.NewPoint(0, 100),
		geometry.NewPoint(0, 0),
		geometry.NewPoint(100, 0),
	} {
		if _, err := s.AddPending(p); err != nil {
			t.Fatalf("AddPending failed: %v", err)
		}
	}
}

func TestPhaseProgression(t *testing.T) {
	s := New()

	expected := []Phase{PhaseCollecting1, PhaseCollecting2, PhaseAwaitingMetadata}
	if s.Phase() != PhaseIdle {
		t.Errorf("initial phase failed: expected %v, got %v", PhaseIdle, s.Phase())
	}

	for i, want := range expected {
		phase, err := s.AddPending(geometry.NewPoint(float64(i), 0))
		if err != nil {
			t.Fatalf("AddPending %d failed: %v", i, err)
		}
		if phase != want {
			t.Errorf("phase after click %d failed: expected %v, got %v", i+1, want, phase)
		}
	}
}

func TestAddPendingFull(t *testing.T) {
	s := New()
	addThree(t, s)

	phase, err := s.AddPending(geometry.NewPoint(50, 50))
	if !errors.Is(err, ErrPendingFull) {
		t.Errorf("expected ErrPendingFull, got %v", err)
	}
	if phase != PhaseAwaitingMetadata {
		t.Errorf("phase after rejected click failed: expected %v, got %v", PhaseAwaitingMetadata, phase)
	}
	if got := len(s.Pending()); got != 3 {
		t.Errorf("pending count failed: expected 3, got %d", got)
	}
}

func TestResetPending(t *testing.T) {
	s := New()
	addThree(t, s)
	if _, err := s.TryCommit(Metadata{Name: "kept", Tolerance: 15, Weight: 1}); err != nil {
		t.Fatalf("TryCommit failed: %v", err)
	}

	for _, points := range []int{0, 1, 2} {
		for i := 0; i < points; i++ {
			if _, err := s.AddPending(geometry.NewPoint(float64(i), float64(i))); err != nil {
				t.Fatalf("AddPending failed: %v", err)
			}
		}

		if dropped := s.ResetPending(); dropped != points {
			t.Errorf("dropped count failed: expected %d, got %d", points, dropped)
		}
		if s.Phase() != PhaseIdle {
			t.Errorf("phase after reset failed: expected %v, got %v", PhaseIdle, s.Phase())
		}
		if s.Count() != 1 {
			t.Errorf("reset with %d pending touched committed measurements: count %d", points, s.Count())
		}
	}
}

func TestPendingAngle(t *testing.T) {
	s := New()
	addThree(t, s)

	angle, err := s.PendingAngle()
	if err != nil {
		t.Fatalf("PendingAngle failed: %v", err)
	}
	if math.Abs(angle-90) > 1e-6 {
		t.Errorf("angle failed: expected 90, got %v", angle)
	}
}

func TestPendingAngleIncomplete(t *testing.T) {
	s := New()
	if _, err := s.AddPending(geometry.NewPoint(1, 1)); err != nil {
		t.Fatalf("AddPending failed: %v", err)
	}

	if _, err := s.PendingAngle(); !errors.Is(err, ErrPendingIncomplete) {
		t.Errorf("expected ErrPendingIncomplete, got %v", err)
	}
}

func TestTryCommit(t *testing.T) {
	s := New()
	addThree(t, s)

	m, err := s.TryCommit(Metadata{Name: "left elbow", Tolerance: 15, Weight: 1})
	if err != nil {
		t.Fatalf("TryCommit failed: %v", err)
	}

	if m.Name != "left elbow" {
		t.Errorf("name failed: expected %q, got %q", "left elbow", m.Name)
	}
	if math.Abs(m.AngleDegrees-90) > 1e-6 {
		t.Errorf("angle failed: expected 90, got %v", m.AngleDegrees)
	}
	if m.Points[1] != geometry.NewPoint(0, 0) {
		t.Errorf("vertex failed: expected (0,0), got %v", m.Points[1])
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase after commit failed: expected %v, got %v", PhaseIdle, s.Phase())
	}
	if s.Count() != 1 {
		t.Errorf("count failed: expected 1, got %d", s.Count())
	}
}

func TestTryCommitIncomplete(t *testing.T) {
	s := New()

	if _, err := s.TryCommit(Metadata{Name: "x", Tolerance: 15, Weight: 1}); !errors.Is(err, ErrPendingIncomplete) {
		t.Errorf("expected ErrPendingIncomplete, got %v", err)
	}
}

func TestTryCommitInvalidMetadataKeepsPending(t *testing.T) {
	s := New()
	addThree(t, s)

	tests := []Metadata{
		{Name: "", Tolerance: 15, Weight: 1},
		{Name: "x", Tolerance: 0, Weight: 1},
		{Name: "x", Tolerance: 15, Weight: -2},
	}
	for _, meta := range tests {
		if _, err := s.TryCommit(meta); err == nil {
			t.Errorf("expected error for metadata %+v, got nil", meta)
		}
		if got := len(s.Pending()); got != 3 {
			t.Fatalf("pending after failed commit: expected 3, got %d", got)
		}
	}

	// A corrected commit still succeeds with the same points.
	if _, err := s.TryCommit(Metadata{Name: "fixed", Tolerance: 15, Weight: 1}); err != nil {
		t.Errorf("commit after correction failed: %v", err)
	}
}

func TestTryCommitDegenerateKeepsPending(t *testing.T) {
	s := New()
	v := geometry.NewPoint(50, 50)
	for _, p := range []geometry.Point{geometry.NewPoint(10, 10), v, v} {
		if _, err := s.AddPending(p); err != nil {
			t.Fatalf("AddPending failed: %v", err)
		}
	}

	_, err := s.TryCommit(Metadata{Name: "bad", Tolerance: 15, Weight: 1})
	if !errors.Is(err, geometry.ErrDegenerateInput) {
		t.Errorf("expected ErrDegenerateInput, got %v", err)
	}
	if got := len(s.Pending()); got != 3 {
		t.Errorf("pending after degenerate commit: expected 3, got %d", got)
	}
	if s.Count() != 0 {
		t.Errorf("count failed: expected 0, got %d", s.Count())
	}
}

func TestUndoPending(t *testing.T) {
	s := New()
	if _, err := s.AddPending(geometry.NewPoint(1, 1)); err != nil {
		t.Fatalf("AddPending failed: %v", err)
	}
	if _, err := s.AddPending(geometry.NewPoint(2, 2)); err != nil {
		t.Fatalf("AddPending failed: %v", err)
	}

	if !s.UndoPending() {
		t.Error("UndoPending failed: expected true")
	}
	if s.Phase() != PhaseCollecting1 {
		t.Errorf("phase after undo failed: expected %v, got %v", PhaseCollecting1, s.Phase())
	}
	if !s.UndoPending() {
		t.Error("UndoPending failed: expected true")
	}
	if s.UndoPending() {
		t.Error("UndoPending on empty buffer: expected false")
	}
}

func TestMeasurementsOrderAndIsolation(t *testing.T) {
	s := New()
	addThree(t, s)
	if _, err := s.TryCommit(Metadata{Name: "first", Tolerance: 15, Weight: 1}); err != nil {
		t.Fatalf("TryCommit failed: %v", err)
	}
	addThree(t, s)
	if _, err := s.TryCommit(Metadata{Name: "second", Tolerance: 10, Weight: 2}); err != nil {
		t.Fatalf("TryCommit failed: %v", err)
	}

	ms := s.Measurements()
	if len(ms) != 2 || ms[0].Name != "first" || ms[1].Name != "second" {
		t.Fatalf("order failed: got %+v", ms)
	}

	ms[0].Name = "mutated"
	if s.Measurements()[0].Name != "first" {
		t.Error("Measurements returned shared backing storage")
	}
}
