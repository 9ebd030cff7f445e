package pose

import (
	"fmt"
	"io"
)

// WriteSnippet emits the record's measurements as AngleDefinition entries
// for the scorer's pose configuration file. The landmark names are not
// known at annotation time, so the points tuple carries placeholders the
// operator replaces by hand after pasting.
func WriteSnippet(w io.Writer, r *Record) error {
	if len(r.Measurements) == 0 {
		_, err := fmt.Fprintln(w, "# no measurements recorded")
		return err
	}

	if _, err := fmt.Fprintf(w, "# %s: paste into required_angles, then replace the placeholder landmark names\n", r.Image); err != nil {
		return err
	}
	for _, m := range r.Measurements {
		_, err := fmt.Fprintf(w, `AngleDefinition(
    name=%q,
    points=("POINT_1", "VERTEX", "POINT_2"),
    target_angle=%.1f,
    tolerance=%.1f,
    weight=%.1f
),
`, m.Name, m.TargetAngle, m.Tolerance, m.Weight)
		if err != nil {
			return err
		}
	}
	return nil
}
