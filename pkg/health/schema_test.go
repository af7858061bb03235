package health

import (
	"errors"
	"testing"

	"github.com/glucoscope/glucoscope/pkg/validate"
)

const validBody = `{
  "glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79,
  "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 25, "pregnancies": 1,
  "physicalActivity": 5, "familyHistory": false, "smokingStatus": true
}`

func TestDecodeValid(t *testing.T) {
	m, violations, err := Decode([]byte(validBody))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	want := Metrics{
		Glucose: 85, BloodPressure: 70, SkinThickness: 20, Insulin: 79, BMI: 21,
		DiabetesPedigreeFunction: 0.3, Age: 25, Pregnancies: 1, PhysicalActivity: 5,
		FamilyHistory: false, SmokingStatus: true,
	}
	if m != want {
		t.Errorf("Decode = %+v, want %+v", m, want)
	}
}

func TestDecodePregnanciesDefault(t *testing.T) {
	body := `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79,
	  "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 25,
	  "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`

	m, violations, err := Decode([]byte(body))
	if err != nil || len(violations) != 0 {
		t.Fatalf("Decode: err=%v violations=%v", err, violations)
	}
	if m.Pregnancies != 0 {
		t.Errorf("Pregnancies = %d, want 0", m.Pregnancies)
	}
}

func TestDecodeViolations(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		code  validate.Code
	}{
		{"age too big", `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 150, "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`, FieldAge, validate.CodeTooBig},
		{"bmi too small", `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 9.9, "diabetesPedigreeFunction": 0.3, "age": 40, "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`, FieldBMI, validate.CodeTooSmall},
		{"fractional age", `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 40.5, "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`, FieldAge, validate.CodeNotInteger},
		{"string glucose", `{"glucose": "85", "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 40, "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`, FieldGlucose, validate.CodeInvalidType},
		{"missing smoking status", `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 40, "physicalActivity": 5, "familyHistory": false}`, FieldSmokingStatus, validate.CodeRequired},
		{"too many pregnancies", `{"glucose": 85, "bloodPressure": 70, "skinThickness": 20, "insulin": 79, "bmi": 21, "diabetesPedigreeFunction": 0.3, "age": 40, "pregnancies": 21, "physicalActivity": 5, "familyHistory": false, "smokingStatus": false}`, FieldPregnancies, validate.CodeTooBig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, violations, err := Decode([]byte(tc.body))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(violations) != 1 {
				t.Fatalf("got %d violations (%v), want 1", len(violations), violations)
			}
			if violations[0].Field != tc.field || violations[0].Code != tc.code {
				t.Errorf("violation = %+v, want field %s code %s", violations[0], tc.field, tc.code)
			}
			if m != (Metrics{}) {
				t.Errorf("expected zero metrics on violation, got %+v", m)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		notObject bool
	}{
		{"not json", `{glucose:`, false},
		{"array", `[1, 2]`, true},
		{"trailing data", `{} {}`, false},
		{"empty", ``, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.notObject && !errors.Is(err, ErrNotObject) {
				t.Errorf("err = %v, want ErrNotObject", err)
			}
		})
	}
}

func TestMetricsValidate(t *testing.T) {
	m := Metrics{Glucose: 85, BloodPressure: 70, BMI: 21, Age: 25, PhysicalActivity: 5}
	if v := m.Validate(); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}

	m.Age = 0
	m.PhysicalActivity = 8
	v := m.Validate()
	if len(v) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(v), v)
	}
	if v[0].Field != FieldAge || v[1].Field != FieldPhysicalActivity {
		t.Errorf("violations = %v", v)
	}
}

func TestValuesRoundTrip(t *testing.T) {
	m := Metrics{Glucose: 120.5, BloodPressure: 80, SkinThickness: 30, Insulin: 100, BMI: 27.3,
		DiabetesPedigreeFunction: 0.45, Age: 50, Pregnancies: 2, PhysicalActivity: 3, FamilyHistory: true}
	if got := FromValues(m.Values()); got != m {
		t.Errorf("FromValues(Values()) = %+v, want %+v", got, m)
	}
}
