package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned by DecodeObject when the body is valid JSON but not
// an object.
var ErrNotObject = errors.New("request body must be a JSON object")

// DecodeObject parses a single JSON object, keeping numbers as json.Number so
// Schema.Validate sees them exactly as written.
func DecodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode body: unexpected data after JSON value")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// Decode runs DecodeObject followed by Validate. A non-nil error means the
// body was unreadable; field problems come back as violations.
func (s Schema) Decode(data []byte) (map[string]any, []Violation, error) {
	obj, err := DecodeObject(data)
	if err != nil {
		return nil, nil, err
	}
	values, violations := s.Validate(obj)
	return values, violations, nil
}
