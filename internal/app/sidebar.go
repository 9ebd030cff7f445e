package app

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/widget"

	"github.com/posekit/gonio/internal/session"
)

// sidebar holds the info panel labels that change as the session advances.
type sidebar struct {
	imageLabel *widget.Label
	phaseLabel *widget.Label
	countLabel *widget.Label
	listLabel  *widget.Label
}

// update refreshes the phase line and the recorded angle list.
func (s *sidebar) update(sess *session.Session) {
	s.phaseLabel.SetText(phaseInstruction(sess.Phase()))
	s.countLabel.SetText(fmt.Sprintf("Angles: %d", sess.Count()))
	s.listLabel.SetText(measurementList(sess.Measurements()))
}

// phaseInstruction tells the operator what the next click does.
func phaseInstruction(p session.Phase) string {
	switch p {
	case session.PhaseCollecting1:
		return "Click the vertex of the angle"
	case session.PhaseCollecting2:
		return "Click the second arm point"
	case session.PhaseAwaitingMetadata:
		return "Fill in the measurement details"
	default:
		return "Click the first arm point"
	}
}

// measurementList formats the committed measurements, one line each.
func measurementList(measurements []session.Measurement) string {
	if len(measurements) == 0 {
		return "No angles recorded yet"
	}
	lines := make([]string, len(measurements))
	for i, m := range measurements {
		lines[i] = fmt.Sprintf("%d: %s %.1f° (±%.1f, weight %.1f)",
			i+1, m.Name, m.AngleDegrees, m.Tolerance, m.Weight)
	}
	return strings.Join(lines, "\n")
}
