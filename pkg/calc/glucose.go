package calc

import (
	"fmt"
	"strings"
)

// TestType is the kind of blood sugar measurement.
type TestType string

const (
	Fasting TestType = "fasting"
	Random  TestType = "random"
)

// ParseTestType accepts "fasting" or "random", case-insensitively.
func ParseTestType(s string) (TestType, error) {
	switch t := TestType(strings.ToLower(strings.TrimSpace(s))); t {
	case Fasting, Random:
		return t, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTestType, s)
}

// GlucoseInterpretation is the reading of a single blood sugar value.
type GlucoseInterpretation struct {
	Value          float64  `json:"value"`
	TestType       TestType `json:"testType"`
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type glucoseBand struct {
	below          float64 // exclusive upper bound; 0 for the last band
	status         string
	message        string
	recommendation string
}

var glucoseBands = map[TestType][]glucoseBand{
	Fasting: {
		{100, "Normal", "Your fasting blood sugar is within the normal range.",
			"Maintain your current healthy lifestyle habits."},
		{126, "Prediabetes", "Your fasting blood sugar indicates prediabetes.",
			"Consider lifestyle modifications and consult with your healthcare provider."},
		{0, "Diabetes Range", "Your fasting blood sugar is in the diabetes range.",
			"Please consult with a healthcare provider for proper diagnosis and treatment."},
	},
	Random: {
		{140, "Normal", "Your random blood sugar is within the normal range.",
			"Continue monitoring your health regularly."},
		{200, "Elevated", "Your random blood sugar is elevated.",
			"Consider getting a fasting glucose test and consult your healthcare provider."},
		{0, "Diabetes Range", "Your random blood sugar is in the diabetes range.",
			"Please seek medical attention promptly for proper evaluation."},
	},
}

// InterpretGlucose classifies a blood sugar value in mg/dL.
func InterpretGlucose(value float64, testType TestType) (GlucoseInterpretation, error) {
	if !positive(value) {
		return GlucoseInterpretation{}, fmt.Errorf("glucose: %w", ErrNonPositive)
	}
	bands, ok := glucoseBands[testType]
	if !ok {
		return GlucoseInterpretation{}, fmt.Errorf("%w %q", ErrUnknownTestType, testType)
	}

	band := bands[len(bands)-1]
	for _, b := range bands[:len(bands)-1] {
		if value < b.below {
			band = b
			break
		}
	}
	return GlucoseInterpretation{
		Value:          value,
		TestType:       testType,
		Status:         band.status,
		Message:        band.message,
		Recommendation: band.recommendation,
	}, nil
}
