// Package contract assembles a parsed constraint specification into the
// immutable aggregate applied around a callable: positional constraints,
// an optional block constraint, and an optional return constraint.
package contract

import (
	"strings"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
	"github.com/covenant/covenant-go/matcher"
)

// Contract is built once where the annotation is declared and shared
// read-only across every invocation of the callable it guards. All
// per-call state lives in the matcher, never here.
type Contract struct {
	positional []covenant.Constraint
	block      *constraint.Block
	returns    covenant.Constraint
	policy     covenant.Policy
	rendered   string
}

// Option configures a contract at construction.
type Option func(*Contract)

// WithOnSuccess replaces the success callback for this contract only.
func WithOnSuccess(fn func(covenant.Event) bool) Option {
	return func(c *Contract) { c.policy.OnSuccess = fn }
}

// WithOnFailure replaces the failure callback for this contract only.
func WithOnFailure(fn func(covenant.Event) error) Option {
	return func(c *Contract) { c.policy.OnFailure = fn }
}

// New builds a contract from a flat specification of constraints and raw
// values (coerced per constraint.Coerce). A Return element must be the
// final one; a Block element must directly precede it. Structural errors
// surface here as *covenant.SpecError, never at call time.
func New(spec []interface{}, opts ...Option) (*Contract, error) {
	c := &Contract{policy: covenant.DefaultPolicy()}

	for i, raw := range spec {
		cons := constraint.Coerce(raw)
		switch t := cons.(type) {
		case *constraint.Return:
			if i != len(spec)-1 {
				return nil, c.specErr("return constraint must be the final element")
			}
			if t.Value == nil {
				return nil, c.specErr("return constraint requires a parameter")
			}
			c.returns = t.Value
		case *constraint.Block:
			if c.block != nil {
				return nil, c.specErr("at most one block constraint is allowed")
			}
			c.block = t
		default:
			if c.block != nil {
				return nil, c.specErr("only a return constraint may follow the block constraint")
			}
			c.positional = append(c.positional, cons)
		}
	}

	if err := c.validateSpec(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(c)
	}
	c.policy = c.policy.Normalize()
	c.rendered = c.render()
	return c, nil
}

// MustNew is New, panicking on a malformed specification.
func MustNew(spec []interface{}, opts ...Option) *Contract {
	c, err := New(spec, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Policy returns the contract's callback policy.
func (c *Contract) Policy() covenant.Policy { return c.policy }

// HasBlock reports whether a block constraint was declared.
func (c *Contract) HasBlock() bool { return c.block != nil }

// HasReturn reports whether a return constraint was declared.
func (c *Contract) HasReturn() bool { return c.returns != nil }

// ValidateArguments checks args against the positional constraints under
// the contract's own policy, returning the possibly-rewritten arguments.
// A contract with no positional constraints accepts anything.
func (c *Contract) ValidateArguments(args []interface{}) ([]interface{}, bool, error) {
	return c.ValidateArgumentsUnder(c.policy, "", args)
}

// ValidateArgumentsUnder is ValidateArguments under an explicit policy
// and call-site location; it implements covenant.Signature so nested
// executable contracts inherit their declaring contract's policy.
func (c *Contract) ValidateArgumentsUnder(p covenant.Policy, loc string, args []interface{}) ([]interface{}, bool, error) {
	if len(c.positional) == 0 {
		return args, true, nil
	}
	m := matcher.New(p, loc)
	return m.Validate(c.positional, args)
}

// ValidateBlock checks the block argument, if a block constraint was
// declared, as a single-element matcher call. The returned value is the
// possibly-wrapped block.
func (c *Contract) ValidateBlock(block interface{}) (interface{}, bool, error) {
	return c.ValidateBlockUnder(c.policy, "", block)
}

// ValidateBlockUnder is ValidateBlock under an explicit policy and
// location. A nil block is treated as absent.
func (c *Contract) ValidateBlockUnder(p covenant.Policy, loc string, block interface{}) (interface{}, bool, error) {
	if c.block == nil {
		return block, true, nil
	}
	vals := []interface{}{}
	if block != nil {
		vals = append(vals, block)
	}
	m := matcher.New(p, loc)
	out, ok, err := m.Validate([]covenant.Constraint{c.block}, vals)
	if len(out) > 0 {
		block = out[0]
	}
	return block, ok, err
}

// ValidateReturn checks a return value, if a return constraint was
// declared, as a single-element matcher call. The returned value is the
// possibly-wrapped result.
func (c *Contract) ValidateReturn(v interface{}) (interface{}, bool, error) {
	return c.ValidateReturnUnder(c.policy, "", v)
}

// ValidateReturnUnder is ValidateReturn under an explicit policy and
// location; part of covenant.Signature.
func (c *Contract) ValidateReturnUnder(p covenant.Policy, loc string, v interface{}) (interface{}, bool, error) {
	if c.returns == nil {
		return v, true, nil
	}
	m := matcher.New(p, loc)
	out, ok, err := m.Validate([]covenant.Constraint{c.returns}, []interface{}{v})
	if len(out) > 0 {
		v = out[0]
	}
	return v, ok, err
}

// String renders the contract signature, e.g. "(int, Splat[string] -> int)".
// The rendering is computed once at construction and stable thereafter.
func (c *Contract) String() string {
	if c.rendered != "" {
		return c.rendered
	}
	return c.render()
}

func (c *Contract) render() string {
	parts := make([]string, 0, len(c.positional)+1)
	for _, p := range c.positional {
		if p == nil {
			parts = append(parts, "<nil>")
			continue
		}
		parts = append(parts, p.String())
	}
	if c.block != nil {
		parts = append(parts, c.block.String())
	}
	s := "(" + strings.Join(parts, ", ")
	if c.returns != nil {
		s += " -> " + c.returns.String()
	}
	return s + ")"
}

func (c *Contract) specErr(reason string) error {
	return &covenant.SpecError{Reason: reason, Signature: c.render()}
}
