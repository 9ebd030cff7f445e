package pose

import "math"

// Summary contains aggregate statistics over the measurements of a record.
type Summary struct {
	Count       int
	MinAngle    float64
	MaxAngle    float64
	AvgAngle    float64
	TotalWeight float64
}

// Summarize computes aggregate statistics for a record. A record without
// measurements yields a zero Summary.
func Summarize(r *Record) Summary {
	s := Summary{Count: len(r.Measurements)}
	if s.Count == 0 {
		return s
	}

	minAngle := math.MaxFloat64
	maxAngle := 0.0
	total := 0.0

	for _, m := range r.Measurements {
		if m.TargetAngle < minAngle {
			minAngle = m.TargetAngle
		}
		if m.TargetAngle > maxAngle {
			maxAngle = m.TargetAngle
		}
		total += m.TargetAngle
		s.TotalWeight += m.Weight
	}

	s.MinAngle = minAngle
	s.MaxAngle = maxAngle
	s.AvgAngle = total / float64(s.Count)
	return s
}
