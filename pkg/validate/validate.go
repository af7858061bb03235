// Package validate checks decoded JSON objects against a declarative field schema.
// A Schema is plain data: each Field names a key, its kind, optional numeric bounds
// and a default. Validation never stops at the first problem; every violated field
// is reported in schema order.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Kind is the JSON value kind a field accepts.
type Kind int

const (
	Number Kind = iota
	Integer
	Boolean
	String
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one key of a validated object.
type Field struct {
	Name     string
	Kind     Kind
	Min      *float64 // inclusive lower bound, numeric kinds only
	Max      *float64 // inclusive upper bound, numeric kinds only
	OneOf    []string // allowed values, String kind only; empty allows any
	Optional bool
	Default  any // used when an optional field is absent
}

// Schema is an ordered set of fields.
type Schema struct {
	Fields []Field
}

// Code classifies a violation.
type Code string

const (
	CodeRequired    Code = "required"
	CodeInvalidType Code = "invalid_type"
	CodeNotInteger  Code = "not_integer"
	CodeTooSmall    Code = "too_small"
	CodeTooBig      Code = "too_big"
	CodeInvalidEnum Code = "invalid_enum"
	CodeMalformed   Code = "invalid_json"
)

// Violation is a single field-level constraint failure.
type Violation struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (v Violation) Error() string { return v.Message }

// Bound returns a pointer to v, for use as Field.Min / Field.Max.
func Bound(v float64) *float64 { return &v }

// Validate checks input against the schema. The returned map holds normalized
// values for every valid field: float64 for Number, int64 for Integer, bool
// for Boolean and string for String. Keys not described by the schema are dropped.
func (s Schema) Validate(input map[string]any) (map[string]any, []Violation) {
	out := make(map[string]any, len(s.Fields))
	var violations []Violation

	for _, f := range s.Fields {
		raw, present := input[f.Name]
		if !present {
			if !f.Optional {
				violations = append(violations, Violation{
					Field:   f.Name,
					Code:    CodeRequired,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
				continue
			}
			if f.Default != nil {
				raw = f.Default
			} else {
				continue
			}
		}

		v, violation := f.check(raw)
		if violation != nil {
			violations = append(violations, *violation)
			continue
		}
		out[f.Name] = v
	}

	return out, violations
}

func (f Field) check(raw any) (any, *Violation) {
	if f.Kind == Boolean {
		b, ok := raw.(bool)
		if !ok {
			return nil, f.violation(CodeInvalidType, "%s must be a boolean", f.Name)
		}
		return b, nil
	}
	if f.Kind == String {
		str, ok := raw.(string)
		if !ok {
			return nil, f.violation(CodeInvalidType, "%s must be a string", f.Name)
		}
		if len(f.OneOf) > 0 && !slices.Contains(f.OneOf, str) {
			return nil, f.violation(CodeInvalidEnum, "%s must be one of %s", f.Name, strings.Join(f.OneOf, ", "))
		}
		return str, nil
	}

	n, ok := toFloat(raw)
	if !ok {
		return nil, f.violation(CodeInvalidType, "%s must be a number", f.Name)
	}
	if f.Kind == Integer && n != math.Trunc(n) {
		return nil, f.violation(CodeNotInteger, "%s must be an integer", f.Name)
	}
	if f.Min != nil && n < *f.Min {
		return nil, f.violation(CodeTooSmall, "%s must be at least %g", f.Name, *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return nil, f.violation(CodeTooBig, "%s must be at most %g", f.Name, *f.Max)
	}

	if f.Kind == Integer {
		return int64(n), nil
	}
	return n, nil
}

func (f Field) violation(code Code, format string, args ...any) *Violation {
	return &Violation{Field: f.Name, Code: code, Message: fmt.Sprintf(format, args...)}
}

func toFloat(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case int32:
		n = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Summary joins violation messages into one line.
func Summary(violations []Violation) string {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}
