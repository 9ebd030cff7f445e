package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posekit/gonio/pkg/geometry"
)

var (
	point1X, point1Y float64
	vertexX, vertexY float64
	point2X, point2Y float64
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Compute the angle between three points",
	Long: `Compute the angle at a vertex from explicit coordinates.
The angle is measured between the arms vertex->point1 and vertex->point2
and reported in degrees within [0, 180].`,
	Args: cobra.NoArgs,
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of the first arm point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of the first arm point")
	measureCmd.Flags().Float64Var(&vertexX, "xv", 0.0, "X coordinate of the vertex")
	measureCmd.Flags().Float64Var(&vertexY, "yv", 0.0, "Y coordinate of the vertex")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of the second arm point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of the second arm point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "xv", "yv", "x2", "y2")
}

func runMeasure(cmd *cobra.Command, args []string) {
	p1 := geometry.NewPoint(point1X, point1Y)
	vertex := geometry.NewPoint(vertexX, vertexY)
	p2 := geometry.NewPoint(point2X, point2Y)

	angle, err := geometry.AngleAtVertex(p1, vertex, p2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing angle: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Three-Point Angle")
	fmt.Println("=================")

	fmt.Printf("\nPoint 1: (%.2f, %.2f)\n", p1.X, p1.Y)
	fmt.Printf("Vertex:  (%.2f, %.2f)\n", vertex.X, vertex.Y)
	fmt.Printf("Point 2: (%.2f, %.2f)\n", p2.X, p2.Y)

	fmt.Printf("\nAngle at vertex: %.2f°\n", angle)
	fmt.Printf("Arm lengths: %.2f and %.2f units\n", vertex.Distance(p1), vertex.Distance(p2))
}
