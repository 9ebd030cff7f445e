// Package session tracks the click collection cycle and the measurements
// committed so far for one annotated image.
package session

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/posekit/gonio/pkg/geometry"
)

// Phase describes how far the current three-click cycle has progressed.
type Phase int

const (
	// PhaseIdle means no points are pending.
	PhaseIdle Phase = iota
	// PhaseCollecting1 means the first arm endpoint has been clicked.
	PhaseCollecting1
	// PhaseCollecting2 means the vertex has been clicked.
	PhaseCollecting2
	// PhaseAwaitingMetadata means all three points are set and the
	// measurement is waiting for its name, tolerance, and weight.
	PhaseAwaitingMetadata
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCollecting1:
		return "collecting-1"
	case PhaseCollecting2:
		return "collecting-2"
	case PhaseAwaitingMetadata:
		return "awaiting-metadata"
	}
	return "unknown"
}

var (
	// ErrPendingFull is returned when a point is added while three points
	// are already pending. Callers typically ignore it, the click simply
	// has no effect until the pending measurement is resolved.
	ErrPendingFull = errors.New("three points already pending")

	// ErrPendingIncomplete is returned when an angle or commit is
	// requested before all three points have been clicked.
	ErrPendingIncomplete = errors.New("three points are required")
)

var validate = validator.New()

// Metadata carries the operator-supplied attributes of a measurement.
type Metadata struct {
	Name      string  `validate:"required"`
	Tolerance float64 `validate:"gt=0"`
	Weight    float64 `validate:"gt=0"`
}

// Measurement is one committed angle in original image coordinates.
// Points are kept in click order: first arm endpoint, vertex, second arm
// endpoint.
type Measurement struct {
	Name         string
	Points       [3]geometry.Point
	AngleDegrees float64
	Tolerance    float64
	Weight       float64
}

// Session holds the pending click buffer and the committed measurements.
// It is confined to the UI goroutine and performs no locking.
type Session struct {
	pending      []geometry.Point
	measurements []Measurement
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Phase returns the current collection phase, derived from the number of
// pending points.
func (s *Session) Phase() Phase {
	return Phase(len(s.pending))
}

// Pending returns a copy of the pending points in click order.
func (s *Session) Pending() []geometry.Point {
	out := make([]geometry.Point, len(s.pending))
	copy(out, s.pending)
	return out
}

// AddPending records a clicked point and returns the phase after the
// click. Once three points are pending, further points are rejected with
// ErrPendingFull until the measurement is committed or reset.
func (s *Session) AddPending(p geometry.Point) (Phase, error) {
	if len(s.pending) >= 3 {
		return s.Phase(), ErrPendingFull
	}
	s.pending = append(s.pending, p)
	return s.Phase(), nil
}

// ResetPending discards the pending points and returns how many were
// dropped. Committed measurements are not touched.
func (s *Session) ResetPending() int {
	n := len(s.pending)
	s.pending = s.pending[:0]
	return n
}

// PendingAngle computes the angle of the three pending points. It returns
// ErrPendingIncomplete before the third click and passes through
// geometry.ErrDegenerateInput when an arm has zero length.
func (s *Session) PendingAngle() (float64, error) {
	if len(s.pending) != 3 {
		return 0, fmt.Errorf("%w, have %d", ErrPendingIncomplete, len(s.pending))
	}
	return geometry.AngleAtVertex(s.pending[0], s.pending[1], s.pending[2])
}

// TryCommit turns the three pending points plus metadata into a committed
// measurement and clears the pending buffer.
//
// On any error the pending buffer is left untouched: invalid metadata can
// be corrected and committed again, while a degenerate configuration is
// for the caller to resolve, usually by resetting.
func (s *Session) TryCommit(meta Metadata) (Measurement, error) {
	if len(s.pending) != 3 {
		return Measurement{}, fmt.Errorf("%w, have %d", ErrPendingIncomplete, len(s.pending))
	}
	if err := validate.Struct(meta); err != nil {
		return Measurement{}, fmt.Errorf("invalid metadata: %w", err)
	}

	angle, err := geometry.AngleAtVertex(s.pending[0], s.pending[1], s.pending[2])
	if err != nil {
		return Measurement{}, err
	}

	m := Measurement{
		Name:         meta.Name,
		Points:       [3]geometry.Point{s.pending[0], s.pending[1], s.pending[2]},
		AngleDegrees: angle,
		Tolerance:    meta.Tolerance,
		Weight:       meta.Weight,
	}
	s.measurements = append(s.measurements, m)
	s.pending = s.pending[:0]
	return m, nil
}

// UndoPending removes the most recently clicked pending point and reports
// whether one was removed.
func (s *Session) UndoPending() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.pending = s.pending[:len(s.pending)-1]
	return true
}

// Measurements returns a copy of the committed measurements in commit
// order.
func (s *Session) Measurements() []Measurement {
	out := make([]Measurement, len(s.measurements))
	copy(out, s.measurements)
	return out
}

// Count returns the number of committed measurements.
func (s *Session) Count() int {
	return len(s.measurements)
}
