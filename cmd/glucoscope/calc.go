package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/glucoscope/glucoscope/pkg/calc"
)

func newBMICmd() *cobra.Command {
	var (
		height    float64
		weight    float64
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Compute body mass index",
		Long:  `Computes BMI from height (metres, or centimetres when above 3) and weight in kilograms.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calc.ComputeBMI(height, weight)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if outputFmt == "json" {
				return writeJSON(w, res)
			}
			fmt.Fprintf(w, "BMI %.1f (%s)\n", res.BMI, res.Category)
			return nil
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm or m (required)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

func newGlucoseCmd() *cobra.Command {
	var (
		value     float64
		testType  string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "glucose",
		Short: "Interpret a blood sugar reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := calc.ParseTestType(testType)
			if err != nil {
				return err
			}
			res, err := calc.InterpretGlucose(value, tt)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if outputFmt == "json" {
				return writeJSON(w, res)
			}
			fmt.Fprintf(w, "%s: %g mg/dL (%s)\n", res.Status, res.Value, res.TestType)
			fmt.Fprintf(w, "%s\n%s\n", res.Message, res.Recommendation)
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Blood sugar in mg/dL (required)")
	cmd.Flags().StringVar(&testType, "type", string(calc.Fasting), "Test type: fasting or random")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
