// Package health defines the health-metrics record collected by a diabetes risk
// assessment, the schema that bounds it, and decoding from raw JSON.
package health

// Metrics is the eleven-field input of an assessment.
// Values are in range once they have passed Schema validation.
type Metrics struct {
	Glucose                  float64 `json:"glucose"`       // mg/dL
	BloodPressure            float64 `json:"bloodPressure"` // diastolic, mm Hg
	SkinThickness            float64 `json:"skinThickness"` // triceps skin fold, mm
	Insulin                  float64 `json:"insulin"`       // 2-hour serum insulin, mu U/ml
	BMI                      float64 `json:"bmi"`
	DiabetesPedigreeFunction float64 `json:"diabetesPedigreeFunction"`
	Age                      int     `json:"age"`
	Pregnancies              int     `json:"pregnancies"`
	PhysicalActivity         int     `json:"physicalActivity"` // active days per week
	FamilyHistory            bool    `json:"familyHistory"`
	SmokingStatus            bool    `json:"smokingStatus"`
}

// JSON field names.
const (
	FieldGlucose                  = "glucose"
	FieldBloodPressure            = "bloodPressure"
	FieldSkinThickness            = "skinThickness"
	FieldInsulin                  = "insulin"
	FieldBMI                      = "bmi"
	FieldDiabetesPedigreeFunction = "diabetesPedigreeFunction"
	FieldAge                      = "age"
	FieldPregnancies              = "pregnancies"
	FieldPhysicalActivity         = "physicalActivity"
	FieldFamilyHistory            = "familyHistory"
	FieldSmokingStatus            = "smokingStatus"
)

// Values returns the metrics keyed by JSON field name, in the normalized form
// produced by Schema.Validate.
func (m Metrics) Values() map[string]any {
	return map[string]any{
		FieldGlucose:                  m.Glucose,
		FieldBloodPressure:            m.BloodPressure,
		FieldSkinThickness:            m.SkinThickness,
		FieldInsulin:                  m.Insulin,
		FieldBMI:                      m.BMI,
		FieldDiabetesPedigreeFunction: m.DiabetesPedigreeFunction,
		FieldAge:                      int64(m.Age),
		FieldPregnancies:              int64(m.Pregnancies),
		FieldPhysicalActivity:         int64(m.PhysicalActivity),
		FieldFamilyHistory:            m.FamilyHistory,
		FieldSmokingStatus:            m.SmokingStatus,
	}
}

// FromValues builds Metrics from a map normalized by Schema.Validate.
// Missing keys leave the zero value.
func FromValues(v map[string]any) Metrics {
	return Metrics{
		Glucose:                  float(v[FieldGlucose]),
		BloodPressure:            float(v[FieldBloodPressure]),
		SkinThickness:            float(v[FieldSkinThickness]),
		Insulin:                  float(v[FieldInsulin]),
		BMI:                      float(v[FieldBMI]),
		DiabetesPedigreeFunction: float(v[FieldDiabetesPedigreeFunction]),
		Age:                      integer(v[FieldAge]),
		Pregnancies:              integer(v[FieldPregnancies]),
		PhysicalActivity:         integer(v[FieldPhysicalActivity]),
		FamilyHistory:            boolean(v[FieldFamilyHistory]),
		SmokingStatus:            boolean(v[FieldSmokingStatus]),
	}
}

func float(v any) float64 {
	f, _ := v.(float64)
	return f
}

func integer(v any) int {
	i, _ := v.(int64)
	return int(i)
}

func boolean(v any) bool {
	b, _ := v.(bool)
	return b
}
