package health

import "github.com/glucoscope/glucoscope/pkg/validate"

// Schema bounds every field of Metrics. Pregnancies is the only optional field
// and defaults to 0.
var Schema = validate.Schema{Fields: []validate.Field{
	{Name: FieldGlucose, Kind: validate.Number, Min: validate.Bound(0), Max: validate.Bound(500)},
	{Name: FieldBloodPressure, Kind: validate.Number, Min: validate.Bound(0), Max: validate.Bound(200)},
	{Name: FieldSkinThickness, Kind: validate.Number, Min: validate.Bound(0), Max: validate.Bound(100)},
	{Name: FieldInsulin, Kind: validate.Number, Min: validate.Bound(0), Max: validate.Bound(1000)},
	{Name: FieldBMI, Kind: validate.Number, Min: validate.Bound(10), Max: validate.Bound(70)},
	{Name: FieldDiabetesPedigreeFunction, Kind: validate.Number, Min: validate.Bound(0), Max: validate.Bound(2.5)},
	{Name: FieldAge, Kind: validate.Integer, Min: validate.Bound(1), Max: validate.Bound(120)},
	{Name: FieldPregnancies, Kind: validate.Integer, Min: validate.Bound(0), Max: validate.Bound(20), Optional: true, Default: int64(0)},
	{Name: FieldPhysicalActivity, Kind: validate.Integer, Min: validate.Bound(0), Max: validate.Bound(7)},
	{Name: FieldFamilyHistory, Kind: validate.Boolean},
	{Name: FieldSmokingStatus, Kind: validate.Boolean},
}}

// ErrNotObject is returned by Decode when the body is valid JSON but not an object.
var ErrNotObject = validate.ErrNotObject

// Decode parses a raw JSON body and validates it against Schema.
// A non-nil error means the body itself could not be read as a JSON object;
// field-level problems are returned as violations with a zero Metrics.
func Decode(data []byte) (Metrics, []validate.Violation, error) {
	values, violations, err := Schema.Decode(data)
	if err != nil {
		return Metrics{}, nil, err
	}
	if len(violations) > 0 {
		return Metrics{}, violations, nil
	}
	return FromValues(values), nil, nil
}

// Validate checks already-typed metrics against Schema.
func (m Metrics) Validate() []validate.Violation {
	_, violations := Schema.Validate(m.Values())
	return violations
}
