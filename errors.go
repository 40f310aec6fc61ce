package covenant

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrHalt is returned from an OnFailure callback to abort the current
// validation without surfacing a violation. The validate call reports
// failure with a nil error, and the instrumentation layer decides what
// "no valid call occurred" means.
var ErrHalt = errors.New("covenant: validation halted")

// Violation reports a value that failed its constraint at call time. It
// names the most specific failing node, not just the top-level list.
type Violation struct {
	// ID identifies this violation instance for external reporting.
	ID string

	Constraint Constraint
	Value      interface{}
	Location   string
}

// NewViolation builds a Violation from a failure event.
func NewViolation(e Event) *Violation {
	return &Violation{
		ID:         uuid.NewString(),
		Constraint: e.Constraint,
		Value:      e.Value,
		Location:   e.Location,
	}
}

func (v *Violation) Error() string {
	loc := v.Location
	if loc == "" {
		loc = "unknown location"
	}
	return fmt.Sprintf("contract violation at %s: value %s does not satisfy %s", loc, FormatValue(v.Value), v.Constraint)
}

// SpecError reports a structurally invalid contract specification. It is
// returned synchronously from contract construction, never at call time.
type SpecError struct {
	Reason    string
	Signature string
}

func (e *SpecError) Error() string {
	if e.Signature == "" {
		return "malformed contract: " + e.Reason
	}
	return fmt.Sprintf("malformed contract %s: %s", e.Signature, e.Reason)
}

// FormatValue renders an argument for error messages.
func FormatValue(v interface{}) string {
	if IsAbsent(v) {
		return "<absent>"
	}
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%#v", v)
}
