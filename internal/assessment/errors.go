package assessment

import (
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/validate"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = store.ErrNotFound

// ValidationError reports every schema violation found in a submission.
// Nothing is stored when it is returned.
type ValidationError struct {
	Violations []validate.Violation
}

func (e *ValidationError) Error() string {
	return "invalid input data: " + validate.Summary(e.Violations)
}
