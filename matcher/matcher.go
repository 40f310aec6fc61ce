// Package matcher implements the recursive walk that checks a constraint
// sequence against a value sequence: lock-step destructuring of lists and
// maps, splat balancing, callback dispatch, and in-place replacement of
// matched callables with contract-enforcing wrappers.
package matcher

import (
	"errors"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
	"github.com/covenant/covenant-go/predicate"
)

// Matcher runs one validation under a fixed policy and call-site
// location. Instances are cheap and stack-local; build one per validate
// call so shared contracts stay free of per-call state.
type Matcher struct {
	policy covenant.Policy
	loc    string
}

// New builds a matcher. Missing policy callbacks fall back to defaults.
func New(p covenant.Policy, loc string) *Matcher {
	return &Matcher{policy: p.Normalize(), loc: loc}
}

// Validate walks constraints and values as two queues, consuming one of
// each per round except at a splat, which absorbs values greedily until
// exactly enough remain for the constraints after it. It returns the
// possibly-rewritten value sequence (matched callables under a
// parameterized executable constraint are replaced by enforcing
// wrappers), whether validation passed, and any error an aborting
// failure callback produced. The input slice is never mutated.
func (m *Matcher) Validate(cons []covenant.Constraint, vals []interface{}) ([]interface{}, bool, error) {
	out := make([]interface{}, len(vals))
	copy(out, vals)

	ci, vi := 0, 0
	for vi < len(out) {
		if ci >= len(cons) {
			// More values than constraints: one arity event carrying
			// the full remaining lists.
			proceed, err := m.arityFailure(cons[ci:], out[vi:])
			return out, proceed, err
		}
		if sp, isSplat := cons[ci].(*constraint.Splat); isSplat {
			if len(cons)-ci <= len(out)-vi {
				// The splat still owes this round a value: match it
				// against the splat's element and look again next round.
				proceed, err := m.checkPair(sp.Elem, out, vi)
				if !proceed || err != nil {
					return out, false, err
				}
				vi++
				continue
			}
			// Exactly enough values remain for the constraints that
			// follow; the splat's zero-or-more obligation is met.
			ci++
			continue
		}
		proceed, err := m.checkPair(cons[ci], out, vi)
		if !proceed || err != nil {
			return out, false, err
		}
		ci++
		vi++
	}

	// Values exhausted: every remaining constraint must be optional.
	for rest := ci; rest < len(cons); rest++ {
		if _, isSplat := cons[rest].(*constraint.Splat); isSplat {
			continue
		}
		if !cons[rest].Optional() {
			proceed, err := m.arityFailure(cons[ci:], out[len(out):])
			return out, proceed, err
		}
	}
	return out, true, nil
}

// Test is the event-free recursive boolean check used by the logical
// combinators, so nested list and map sub-constraints still destructure
// without emitting events or rewriting values.
func (m *Matcher) Test(c covenant.Constraint, v interface{}) bool {
	switch t := c.(type) {
	case *constraint.Atom:
		return predicate.Safe(t.Pred, v)
	case *constraint.List:
		items, ok := listItems(v)
		return ok && m.testSeq(t.Elems, items)
	case *constraint.Map:
		return m.testMap(t, v)
	case *constraint.And:
		for _, s := range t.Subs {
			if !m.Test(s, v) {
				return false
			}
		}
		return true
	case *constraint.Or:
		for _, s := range t.Subs {
			if m.Test(s, v) {
				return true
			}
		}
		return false
	case *constraint.Xor:
		passed := 0
		for _, s := range t.Subs {
			if m.Test(s, v) {
				passed++
			}
		}
		return passed == 1
	case *constraint.Not:
		return !m.Test(t.Sub, v)
	case *constraint.Maybe:
		return covenant.IsAbsent(v) || v == nil || m.Test(t.Sub, v)
	case *constraint.None:
		return covenant.IsAbsent(v)
	case *constraint.Splat:
		return m.Test(t.Elem, v)
	case *constraint.Executable:
		return covenant.IsCallable(v)
	case *constraint.Block:
		return covenant.IsCallable(v)
	case *constraint.Return:
		return m.Test(t.Value, v)
	default:
		return false
	}
}

// checkPair validates one (constraint, value) pair at position i of out.
// List and map constraints with matching value shapes recurse eventfully
// so a deep mismatch reports its most specific failing node; everything
// else emits exactly one success or failure event. The returned bool is
// "proceed": false means the walk stops and validation failed.
func (m *Matcher) checkPair(c covenant.Constraint, out []interface{}, i int) (bool, error) {
	v := out[i]
	switch t := c.(type) {
	case *constraint.List:
		items, ok := listItems(v)
		if !ok {
			return m.failure(c, v)
		}
		rewritten, passed, err := m.Validate(t.Elems, items)
		if passed {
			// Only interface-element slices can hold wrapped callables;
			// typed slices keep their original representation.
			if _, iface := v.([]interface{}); iface {
				out[i] = rewritten
			}
		}
		return passed, err
	case *constraint.Map:
		return m.checkMap(t, out, i)
	default:
		if m.Test(c, v) {
			if sig := constraint.SignatureOf(c); sig != nil && covenant.IsCallable(v) {
				out[i] = m.WrapCallable(sig, v)
			}
			return m.success(c, v)
		}
		return m.failure(c, v)
	}
}

// WrapCallable produces an enforcing wrapper: a callable that applies sig to
// its own arguments and return value under this matcher's policy and
// location before and after invoking fn.
func (m *Matcher) WrapCallable(sig covenant.Signature, fn interface{}) covenant.Callable {
	policy := m.policy
	loc := m.loc
	return func(args ...interface{}) (interface{}, error) {
		rw, ok, err := sig.ValidateArgumentsUnder(policy, loc, args)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		ret, err := covenant.Invoke(fn, rw...)
		if err != nil {
			return nil, err
		}
		checked, ok, err := sig.ValidateReturnUnder(policy, loc, ret)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return checked, nil
	}
}

func (m *Matcher) success(c covenant.Constraint, v interface{}) (bool, error) {
	if !m.policy.OnSuccess(covenant.Event{Constraint: c, Value: v, Location: m.loc}) {
		return false, nil
	}
	return true, nil
}

func (m *Matcher) failure(c covenant.Constraint, v interface{}) (bool, error) {
	err := m.policy.OnFailure(covenant.Event{Constraint: c, Value: v, Location: m.loc})
	if err == nil {
		// Recovered: the callback chose to continue.
		return true, nil
	}
	if errors.Is(err, covenant.ErrHalt) {
		return false, nil
	}
	return false, err
}

func (m *Matcher) arityFailure(cons []covenant.Constraint, vals []interface{}) (bool, error) {
	remaining := make([]interface{}, len(vals))
	copy(remaining, vals)
	return m.failure(constraint.NewList(cons...), remaining)
}

func (m *Matcher) testSeq(cons []covenant.Constraint, vals []interface{}) bool {
	ci, vi := 0, 0
	for vi < len(vals) {
		if ci >= len(cons) {
			return false
		}
		if sp, isSplat := cons[ci].(*constraint.Splat); isSplat {
			if len(cons)-ci <= len(vals)-vi {
				if !m.Test(sp.Elem, vals[vi]) {
					return false
				}
				vi++
				continue
			}
			ci++
			continue
		}
		if !m.Test(cons[ci], vals[vi]) {
			return false
		}
		ci++
		vi++
	}
	for ; ci < len(cons); ci++ {
		if _, isSplat := cons[ci].(*constraint.Splat); isSplat {
			continue
		}
		if !cons[ci].Optional() {
			return false
		}
	}
	return true
}

func (m *Matcher) testMap(t *constraint.Map, v interface{}) bool {
	if !mapShaped(v) {
		return false
	}
	for _, entry := range t.Entries {
		val, present, _ := mapLookup(v, entry.Key)
		if !present {
			if !entry.Constraint.Optional() && !m.Test(entry.Constraint, covenant.Absent) {
				return false
			}
			continue
		}
		if !m.Test(entry.Constraint, val) {
			return false
		}
	}
	return true
}

func (m *Matcher) checkMap(t *constraint.Map, out []interface{}, i int) (bool, error) {
	v := out[i]
	if !mapShaped(v) {
		return m.failure(t, v)
	}
	rewrite := newMapRewriter(v)
	for _, entry := range t.Entries {
		val, present, _ := mapLookup(v, entry.Key)
		if !present {
			if entry.Constraint.Optional() || m.Test(entry.Constraint, covenant.Absent) {
				continue
			}
			proceed, err := m.failure(entry.Constraint, covenant.Absent)
			if !proceed || err != nil {
				return proceed, err
			}
			continue
		}
		tmp := []interface{}{val}
		proceed, err := m.checkPair(entry.Constraint, tmp, 0)
		if !proceed || err != nil {
			return proceed, err
		}
		if rewritesValue(entry.Constraint, val) {
			rewrite.set(entry.Key, tmp[0])
		}
	}
	if rewritten, changed := rewrite.result(); changed {
		out[i] = rewritten
	}
	return true, nil
}
