package feasibility

import (
	"fmt"
	"math"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// Validate checks the plan before any arithmetic. Missing fields take
// precedence over invalid ones so a partial answer set is reported whole.
func Validate(p model.PlanInput) error {
	missing := &MissingFieldError{}
	invalid := &InvalidFieldError{}

	for _, f := range p.EnumFields() {
		switch {
		case f.Name == "scope" && !f.Set:
			// optional
		case !f.Set:
			missing.Fields = append(missing.Fields, f.Name)
		case !f.Valid:
			invalid.add(f.Name, fmt.Sprintf("unknown value %q", f.Value))
		}
	}

	numbers := []struct {
		name     string
		value    *float64
		positive bool
	}{
		{"capital", p.Capital, false},
		{"unit_price", p.UnitPrice, true},
		{"target_volume", p.TargetVolume, false},
	}
	for _, n := range numbers {
		switch {
		case n.value == nil:
			missing.Fields = append(missing.Fields, n.name)
		case math.IsNaN(*n.value) || math.IsInf(*n.value, 0):
			invalid.add(n.name, "not a finite number")
		case n.positive && *n.value <= 0:
			invalid.add(n.name, "must be greater than zero")
		case *n.value < 0:
			invalid.add(n.name, "must not be negative")
		}
	}

	if len(missing.Fields) > 0 {
		return missing
	}
	if len(invalid.Fields) > 0 {
		return invalid
	}
	return nil
}
