// Package covenant defines the shared primitives of the contract engine:
// the constraint and signature interfaces, the callback event and policy
// types, and the callable value helpers. The concrete constraint variants
// live in package constraint, the recursive matching algorithm in package
// matcher, and the aggregate in package contract.
package covenant

// Constraint is a node in a contract's specification tree. Implementations
// are immutable once constructed; validation never mutates them, so a
// constraint may be shared across any number of concurrent validations.
type Constraint interface {
	// Optional reports whether the constraint may be satisfied by the
	// absence of a value. Combinators propagate optionality from their
	// children.
	Optional() bool

	// String renders the constraint for signatures and error messages.
	// Rendering must be stable across calls.
	String() string
}

// Signature is the nested contract carried by executable and block
// constraints. It is implemented by contract.Contract; the indirection
// keeps the constraint data model free of a dependency on the aggregate.
type Signature interface {
	// ValidateArgumentsUnder checks args under the given policy and
	// call-site location, returning the possibly-rewritten arguments.
	ValidateArgumentsUnder(p Policy, loc string, args []interface{}) ([]interface{}, bool, error)

	// ValidateReturnUnder checks a return value under the given policy
	// and call-site location.
	ValidateReturnUnder(p Policy, loc string, v interface{}) (interface{}, bool, error)

	String() string
}

// Event is the payload delivered to success and failure callbacks, once
// per (constraint, value) comparison and once per arity mismatch. Events
// are built per comparison and never retained by the engine.
type Event struct {
	Constraint Constraint
	Value      interface{}
	Location   string
}

// Policy decides what happens after each comparison. Both callbacks are
// per-contract, never global, so call sites can carry different
// enforcement policies over the same constraint data.
type Policy struct {
	// OnSuccess is invoked after each passing comparison. Returning
	// false aborts the enclosing validation without an error.
	OnSuccess func(Event) bool

	// OnFailure is invoked after each failing comparison. Returning nil
	// recovers the failure and validation continues; returning ErrHalt
	// aborts without an error; any other error aborts validation and is
	// surfaced to the caller.
	OnFailure func(Event) error
}

// DefaultPolicy continues on success and turns each failure into a
// Violation surfaced to the caller.
func DefaultPolicy() Policy {
	return Policy{
		OnSuccess: func(Event) bool { return true },
		OnFailure: func(e Event) error { return NewViolation(e) },
	}
}

// Normalize fills missing callbacks with the defaults.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.OnSuccess == nil {
		p.OnSuccess = def.OnSuccess
	}
	if p.OnFailure == nil {
		p.OnFailure = def.OnFailure
	}
	return p
}
