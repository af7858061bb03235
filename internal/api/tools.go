package api

import (
	"fmt"
	"net/http"

	"github.com/glucoscope/glucoscope/pkg/calc"
	"github.com/glucoscope/glucoscope/pkg/validate"
)

var bmiSchema = validate.Schema{Fields: []validate.Field{
	{Name: "height", Kind: validate.Number, Min: validate.Bound(0.5), Max: validate.Bound(300)},
	{Name: "weight", Kind: validate.Number, Min: validate.Bound(1), Max: validate.Bound(1000)},
}}

var glucoseSchema = validate.Schema{Fields: []validate.Field{
	{Name: "value", Kind: validate.Number},
	{Name: "testType", Kind: validate.String, OneOf: []string{string(calc.Fasting), string(calc.Random)},
		Optional: true, Default: string(calc.Fasting)},
}}

// decodeTool reads and validates a calculator request. Numeric fields listed
// in positive must be strictly greater than zero.
func decodeTool(w http.ResponseWriter, r *http.Request, schema validate.Schema, positive ...string) (map[string]any, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	values, violations, err := schema.Decode(body)
	if err != nil {
		writeValidationError(w, []validate.Violation{{Field: "body", Code: validate.CodeMalformed, Message: err.Error()}})
		return nil, false
	}
	for _, name := range positive {
		if v, ok := values[name].(float64); ok && v <= 0 {
			violations = append(violations, validate.Violation{
				Field:   name,
				Code:    validate.CodeTooSmall,
				Message: fmt.Sprintf("%s must be greater than 0", name),
			})
		}
	}
	if len(violations) > 0 {
		writeValidationError(w, violations)
		return nil, false
	}
	return values, true
}

func (h *Handler) handleBMI(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeTool(w, r, bmiSchema, "height", "weight")
	if !ok {
		return
	}
	res, err := calc.ComputeBMI(values["height"].(float64), values["weight"].(float64))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleGlucose(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeTool(w, r, glucoseSchema, "value")
	if !ok {
		return
	}
	res, err := calc.InterpretGlucose(values["value"].(float64), calc.TestType(values["testType"].(string)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
