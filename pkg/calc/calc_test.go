package calc

import (
	"errors"
	"math"
	"testing"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		want   float64
	}{
		{"centimetres", 170, 65, 65 / (1.7 * 1.7)},
		{"metres", 1.7, 65, 65 / (1.7 * 1.7)},
		{"cutoff is metres", 3, 90, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BMI(tc.height, tc.weight)
			if err != nil {
				t.Fatalf("BMI: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("BMI(%v, %v) = %v, want %v", tc.height, tc.weight, got, tc.want)
			}
		})
	}
}

func TestBMIRejectsNonPositive(t *testing.T) {
	for _, in := range [][2]float64{{0, 60}, {170, 0}, {-1, 60}, {math.NaN(), 60}} {
		if _, err := BMI(in[0], in[1]); !errors.Is(err, ErrNonPositive) {
			t.Errorf("BMI(%v, %v) err = %v, want ErrNonPositive", in[0], in[1], err)
		}
	}
}

func TestBMIRejectsNonFiniteResult(t *testing.T) {
	for _, in := range [][2]float64{{1e-200, 70}, {170, 1e308}} {
		if _, err := BMI(in[0], in[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("BMI(%v, %v) err = %v, want ErrOutOfRange", in[0], in[1], err)
		}
		if _, err := ComputeBMI(in[0], in[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ComputeBMI(%v, %v) err = %v, want ErrOutOfRange", in[0], in[1], err)
		}
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4, "Underweight"},
		{18.5, "Normal Weight"},
		{24.9, "Normal Weight"},
		{25, "Overweight"},
		{29.9, "Overweight"},
		{30, "Obese"},
	}
	for _, tc := range tests {
		if got := BMICategory(tc.bmi); got != tc.want {
			t.Errorf("BMICategory(%v) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

func TestComputeBMIRounds(t *testing.T) {
	res, err := ComputeBMI(170, 65)
	if err != nil {
		t.Fatal(err)
	}
	if res.BMI != 22.5 || res.Category != "Normal Weight" {
		t.Errorf("ComputeBMI = %+v", res)
	}
}

func TestInterpretGlucose(t *testing.T) {
	tests := []struct {
		value    float64
		testType TestType
		want     string
	}{
		{99, Fasting, "Normal"},
		{100, Fasting, "Prediabetes"},
		{125, Fasting, "Prediabetes"},
		{126, Fasting, "Diabetes Range"},
		{139, Random, "Normal"},
		{140, Random, "Elevated"},
		{199, Random, "Elevated"},
		{200, Random, "Diabetes Range"},
	}
	for _, tc := range tests {
		got, err := InterpretGlucose(tc.value, tc.testType)
		if err != nil {
			t.Fatalf("InterpretGlucose(%v, %s): %v", tc.value, tc.testType, err)
		}
		if got.Status != tc.want {
			t.Errorf("InterpretGlucose(%v, %s) = %q, want %q", tc.value, tc.testType, got.Status, tc.want)
		}
		if got.Message == "" || got.Recommendation == "" {
			t.Errorf("InterpretGlucose(%v, %s) missing message or recommendation", tc.value, tc.testType)
		}
	}
}

func TestInterpretGlucoseErrors(t *testing.T) {
	if _, err := InterpretGlucose(0, Fasting); !errors.Is(err, ErrNonPositive) {
		t.Errorf("zero value err = %v", err)
	}
	if _, err := InterpretGlucose(90, TestType("hba1c")); !errors.Is(err, ErrUnknownTestType) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestParseTestType(t *testing.T) {
	if tt, err := ParseTestType(" Fasting "); err != nil || tt != Fasting {
		t.Errorf("ParseTestType = %v, %v", tt, err)
	}
	if _, err := ParseTestType("later"); !errors.Is(err, ErrUnknownTestType) {
		t.Errorf("err = %v", err)
	}
}
