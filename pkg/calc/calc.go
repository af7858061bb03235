// Package calc holds the standalone health calculators: body mass index and
// blood sugar interpretation.
package calc

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositive     = errors.New("value must be greater than zero")
	ErrUnknownTestType = errors.New("unknown test type")
	ErrOutOfRange      = errors.New("result out of range")
)

// centimetreCutoff separates heights given in metres from heights in cm.
const centimetreCutoff = 3

// BMI computes body mass index from weight in kilograms and height in either
// metres or centimetres. Heights above 3 are taken to be centimetres.
func BMI(height, weightKg float64) (float64, error) {
	if !positive(height) {
		return 0, fmt.Errorf("height: %w", ErrNonPositive)
	}
	if !positive(weightKg) {
		return 0, fmt.Errorf("weight: %w", ErrNonPositive)
	}
	metres := height
	if metres > centimetreCutoff {
		metres /= 100
	}
	bmi := weightKg / (metres * metres)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, fmt.Errorf("bmi: %w", ErrOutOfRange)
	}
	return bmi, nil
}

// BMICategory labels a body mass index.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal Weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMIResult pairs a BMI with its category, rounded to one decimal.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// ComputeBMI runs BMI and BMICategory together.
func ComputeBMI(height, weightKg float64) (BMIResult, error) {
	bmi, err := BMI(height, weightKg)
	if err != nil {
		return BMIResult{}, err
	}
	return BMIResult{BMI: math.Round(bmi*10) / 10, Category: BMICategory(bmi)}, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
