package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posekit/gonio/pkg/pose"
)

var showSnippet bool

var infoCmd = &cobra.Command{
	Use:   "info [record]",
	Short: "Summarize an exported angle record",
	Long:  "Show the measurements stored in a _angles.json record together with aggregate angle statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&showSnippet, "snippet", false, "print the pose definition snippet instead of the summary")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	rec, err := pose.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
		os.Exit(1)
	}

	if showSnippet {
		if err := pose.WriteSnippet(os.Stdout, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snippet: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Angle Record Information")
	fmt.Println("========================")
	fmt.Printf("Image: %s\n", rec.Image)
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Measurements:")
	if len(rec.Measurements) == 0 {
		fmt.Println("  none")
	}
	for i, m := range rec.Measurements {
		fmt.Printf("  %d: %s %.1f° (tolerance %.1f, weight %.1f)\n",
			i+1, m.Name, m.TargetAngle, m.Tolerance, m.Weight)
	}

	summary := pose.Summarize(rec)
	fmt.Println("\nAngle Statistics:")
	fmt.Printf("  Count: %d\n", summary.Count)
	fmt.Printf("  Minimum: %.2f°\n", summary.MinAngle)
	fmt.Printf("  Maximum: %.2f°\n", summary.MaxAngle)
	fmt.Printf("  Average: %.2f°\n", summary.AvgAngle)
	fmt.Printf("  Total weight: %.2f\n", summary.TotalWeight)
}
