package feasibility

import (
	"fmt"
	"strings"
)

// MissingFieldError reports mandatory plan fields that were not supplied.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("feasibility: missing required fields: %s", strings.Join(e.Fields, ", "))
}

// InvalidFieldError reports supplied plan fields whose values are outside
// their catalog or numeric range.
type InvalidFieldError struct {
	Fields  []string
	Reasons map[string]string
}

func (e *InvalidFieldError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, e.Reasons[f]))
	}
	return fmt.Sprintf("feasibility: invalid fields: %s", strings.Join(parts, ", "))
}

func (e *InvalidFieldError) add(field, reason string) {
	if e.Reasons == nil {
		e.Reasons = make(map[string]string)
	}
	e.Fields = append(e.Fields, field)
	e.Reasons[field] = reason
}
