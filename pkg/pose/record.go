// Package pose defines the angle record produced by the annotator and
// consumed by the downstream pose scorer.
package pose

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/posekit/gonio/pkg/geometry"
)

// Roles of the three clicked points within a measurement. The vertex is
// always the second click.
const (
	RolePoint1 = "point1"
	RoleVertex = "vertex"
	RolePoint2 = "point2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

// PointRef is one clicked point with its role, in original image pixels.
type PointRef struct {
	Role string  `json:"role" validate:"required,oneof=point1 vertex point2"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// AngleDefinition is a single named angle measurement. Field names mirror
// the scorer's configuration schema so records can be carried over 1:1.
type AngleDefinition struct {
	Name        string      `json:"name" validate:"required"`
	TargetAngle float64     `json:"target_angle" validate:"gte=0,lte=180"`
	Tolerance   float64     `json:"tolerance" validate:"gt=0"`
	Weight      float64     `json:"weight" validate:"gt=0"`
	Points      [3]PointRef `json:"points" validate:"dive"`
}

// Record is the persisted annotation session for one image.
type Record struct {
	Image        string            `json:"image" validate:"required"`
	TotalAngles  int               `json:"total_angles" validate:"gte=0"`
	Measurements []AngleDefinition `json:"measurements" validate:"dive"`
}

// NewAngleDefinition builds a measurement from the three clicked points in
// click order: first arm endpoint, vertex, second arm endpoint.
func NewAngleDefinition(name string, p1, vertex, p2 geometry.Point, angle, tolerance, weight float64) AngleDefinition {
	return AngleDefinition{
		Name:        name,
		TargetAngle: angle,
		Tolerance:   tolerance,
		Weight:      weight,
		Points: [3]PointRef{
			{Role: RolePoint1, X: p1.X, Y: p1.Y},
			{Role: RoleVertex, X: vertex.X, Y: vertex.Y},
			{Role: RolePoint2, X: p2.X, Y: p2.Y},
		},
	}
}

// NewRecord builds a record for the given image, keeping TotalAngles in
// sync with the measurement list.
func NewRecord(image string, measurements []AngleDefinition) *Record {
	return &Record{
		Image:        image,
		TotalAngles:  len(measurements),
		Measurements: measurements,
	}
}

// Validate checks the record against the schema constraints.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	if r.TotalAngles != len(r.Measurements) {
		return fmt.Errorf("invalid record: total_angles is %d but %d measurements are present",
			r.TotalAngles, len(r.Measurements))
	}
	return nil
}

// Save writes the record as indented JSON.
func Save(path string, r *Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Load reads and validates a record written by Save.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &r, nil
}
