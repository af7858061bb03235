// Package main provides the glucoscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glucoscope",
		Short: "Diabetes risk assessment from the command line",
		Long: `Glucoscope scores diabetes risk from health metrics, runs the BMI and
blood sugar calculators, and lists past assessments from a glucoscoped server
or a local record directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newBMICmd(),
		newGlucoseCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

// firstNonEmpty returns the first non-empty string from the arguments.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
