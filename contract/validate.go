package contract

import (
	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
)

// validateSpec walks the constraint tree and rejects every structurally
// invalid shape before the first call can happen: bare splat or return
// tokens, nested or duplicated returns, more than one splat per list
// scope, negated parameterized callables, and degenerate combinators.
func (c *Contract) validateSpec() error {
	if err := c.checkListScope(c.positional); err != nil {
		return err
	}
	for _, p := range c.positional {
		if err := c.walk(p); err != nil {
			return err
		}
	}
	if c.returns != nil {
		if err := c.walk(c.returns); err != nil {
			return err
		}
	}
	return nil
}

// checkListScope enforces the one-splat-per-list rule for a single list
// context: the top-level positional sequence, a List's elements, or any
// list nested in a map value.
func (c *Contract) checkListScope(elems []covenant.Constraint) error {
	splats := 0
	for _, e := range elems {
		if _, ok := e.(*constraint.Splat); ok {
			splats++
		}
	}
	if splats > 1 {
		return c.specErr("at most one splat constraint per list")
	}
	return nil
}

func (c *Contract) walk(node covenant.Constraint) error {
	switch t := node.(type) {
	case nil:
		return c.specErr("nil constraint in specification")
	case *constraint.Splat:
		if t.Elem == nil {
			return c.specErr("splat constraint requires a parameter")
		}
		return c.walk(t.Elem)
	case *constraint.Return:
		return c.specErr("return constraint may not be nested")
	case *constraint.Block:
		return c.specErr("block constraint must be the last element before any return constraint")
	case *constraint.List:
		if err := c.checkListScope(t.Elems); err != nil {
			return err
		}
		for _, e := range t.Elems {
			if err := c.walk(e); err != nil {
				return err
			}
		}
	case *constraint.Map:
		for _, entry := range t.Entries {
			if err := c.walk(entry.Constraint); err != nil {
				return err
			}
		}
	case *constraint.And:
		return c.walkSubs(t.Subs)
	case *constraint.Or:
		return c.walkSubs(t.Subs)
	case *constraint.Xor:
		return c.walkSubs(t.Subs)
	case *constraint.Not:
		if t.Sub == nil {
			return c.specErr("negation requires a parameter")
		}
		if sig := constraint.SignatureOf(t.Sub); sig != nil {
			return c.specErr("cannot negate a parameterized callable constraint")
		}
		return c.walk(t.Sub)
	case *constraint.Maybe:
		if t.Sub == nil {
			return c.specErr("maybe requires a parameter")
		}
		return c.walk(t.Sub)
	}
	return nil
}

func (c *Contract) walkSubs(subs []covenant.Constraint) error {
	if len(subs) < 2 {
		return c.specErr("logical combinators require at least two sub-constraints")
	}
	for _, s := range subs {
		if err := c.walk(s); err != nil {
			return err
		}
	}
	return nil
}
