package scoring

// Weights holds the coefficients of the linear score.
// Boolean features contribute their weight when true and nothing otherwise.
type Weights struct {
	Bias                     float64
	Pregnancies              float64
	Glucose                  float64
	BloodPressure            float64
	SkinThickness            float64
	Insulin                  float64
	BMI                      float64
	DiabetesPedigreeFunction float64
	Age                      float64
	PhysicalActivity         float64
	FamilyHistory            float64
	SmokingStatus            float64
}

// Defaults returns the fixed production coefficients.
func Defaults() Weights {
	return Weights{
		Bias:                     -5.2,
		Pregnancies:              0.082,
		Glucose:                  0.028,
		BloodPressure:            -0.008,
		SkinThickness:            0.002,
		Insulin:                  -0.0008,
		BMI:                      0.065,
		DiabetesPedigreeFunction: 0.85,
		Age:                      0.012,
		PhysicalActivity:         -0.095,
		FamilyHistory:            0.55,
		SmokingStatus:            0.42,
	}
}
