// Package constraint defines the closed set of contract constraint
// variants. Variants carry data only; the recursive matching semantics
// live in package matcher, which type-switches over the concrete types
// here.
package constraint

import (
	"fmt"
	"strings"

	covenant "github.com/covenant/covenant-go"
)

// Atom wraps a value predicate. Leaf node.
type Atom struct {
	Pred Predicate
}

// Predicate mirrors predicate.Predicate without importing it, so callers
// may supply their own implementations.
type Predicate interface {
	Match(v interface{}) bool
	String() string
}

// NewAtom builds an atomic constraint around p.
func NewAtom(p Predicate) *Atom { return &Atom{Pred: p} }

func (a *Atom) Optional() bool { return false }

func (a *Atom) String() string { return a.Pred.String() }

// List matches list-shaped values and destructures element-wise. At most
// one Splat may appear among its elements.
type List struct {
	Elems []covenant.Constraint
}

// NewList builds a list constraint from elems.
func NewList(elems ...covenant.Constraint) *List { return &List{Elems: elems} }

func (l *List) Optional() bool { return false }

func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = render(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapEntry is one key/constraint pair of a Map constraint.
type MapEntry struct {
	Key        interface{}
	Constraint covenant.Constraint
}

// Map matches map-shaped values and destructures by the keys it names;
// value keys absent from the constraint are ignored. Entry order is the
// declaration order, which keeps rendering stable.
type Map struct {
	Entries []MapEntry
}

// NewMap builds a map constraint from entries.
func NewMap(entries ...MapEntry) *Map { return &Map{Entries: entries} }

func (m *Map) Optional() bool { return false }

func (m *Map) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = fmt.Sprintf("%v: %s", e.Key, render(e.Constraint))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// And passes iff all sub-constraints pass. Optional iff every child is.
type And struct {
	Subs []covenant.Constraint
}

// NewAnd builds an intersection of subs.
func NewAnd(subs ...covenant.Constraint) *And { return &And{Subs: subs} }

func (a *And) Optional() bool {
	if len(a.Subs) == 0 {
		return false
	}
	for _, s := range a.Subs {
		if !s.Optional() {
			return false
		}
	}
	return true
}

func (a *And) String() string { return renderSubs("And", a.Subs) }

// Or passes iff at least one sub-constraint passes. Optional iff any
// child is.
type Or struct {
	Subs []covenant.Constraint
}

// NewOr builds a union of subs.
func NewOr(subs ...covenant.Constraint) *Or { return &Or{Subs: subs} }

func (o *Or) Optional() bool { return anyOptional(o.Subs) }

func (o *Or) String() string { return renderSubs("Or", o.Subs) }

// Xor passes iff exactly one sub-constraint passes. Optional iff any
// child is.
type Xor struct {
	Subs []covenant.Constraint
}

// NewXor builds an exclusive union of subs.
func NewXor(subs ...covenant.Constraint) *Xor { return &Xor{Subs: subs} }

func (x *Xor) Optional() bool { return anyOptional(x.Subs) }

func (x *Xor) String() string { return renderSubs("Xor", x.Subs) }

// Not passes iff the wrapped constraint fails. Negating a parameterized
// callable constraint is ambiguous and rejected at contract construction.
type Not struct {
	Sub covenant.Constraint
}

// NewNot builds a negation of sub.
func NewNot(sub covenant.Constraint) *Not { return &Not{Sub: sub} }

func (n *Not) Optional() bool { return false }

func (n *Not) String() string { return "Not[" + render(n.Sub) + "]" }

// Maybe passes when the value is absent, nil, or satisfies the wrapped
// constraint. Marks its position optional.
type Maybe struct {
	Sub covenant.Constraint
}

// NewMaybe builds an optional wrapper around sub.
func NewMaybe(sub covenant.Constraint) *Maybe { return &Maybe{Sub: sub} }

func (m *Maybe) Optional() bool { return true }

func (m *Maybe) String() string { return "Maybe[" + render(m.Sub) + "]" }

// None passes only when the argument is absent entirely, asserting
// zero-arity at its position. An explicit nil does not satisfy it.
type None struct{}

// NewNone builds the absence constraint.
func NewNone() *None { return &None{} }

func (*None) Optional() bool { return true }

func (*None) String() string { return "None" }

// Splat means "zero or more positions of Elem" within one list. It is
// not a value test by itself; the matcher consumes it via the balancing
// rule. At most one Splat may appear per list scope.
type Splat struct {
	Elem covenant.Constraint
}

// NewSplat builds a variable-arity marker around elem.
func NewSplat(elem covenant.Constraint) *Splat { return &Splat{Elem: elem} }

func (s *Splat) Optional() bool { return true }

func (s *Splat) String() string { return "Splat[" + render(s.Elem) + "]" }

// Executable matches callable values. With a non-nil Sig the matched
// callable is replaced, in the caller-visible argument sequence, by a
// wrapper enforcing Sig on its own invocations.
type Executable struct {
	Sig covenant.Signature
}

// NewExecutable builds a callable constraint; sig may be nil.
func NewExecutable(sig covenant.Signature) *Executable { return &Executable{Sig: sig} }

func (e *Executable) Optional() bool { return false }

func (e *Executable) String() string {
	if e.Sig == nil {
		return "func"
	}
	return "func" + e.Sig.String()
}

// Block carries Executable semantics for the distinguished callback
// position. At most one per contract, placed last before any return
// constraint.
type Block struct {
	Sig covenant.Signature
}

// NewBlock builds a block constraint; sig may be nil.
func NewBlock(sig covenant.Signature) *Block { return &Block{Sig: sig} }

func (b *Block) Optional() bool { return false }

func (b *Block) String() string {
	if b.Sig == nil {
		return "&func"
	}
	return "&func" + b.Sig.String()
}

// Return wraps the constraint applied to a callable's return value.
// Legal only as the final element of a top-level specification.
type Return struct {
	Value covenant.Constraint
}

// NewReturn builds a return-value marker around value.
func NewReturn(value covenant.Constraint) *Return { return &Return{Value: value} }

func (r *Return) Optional() bool { return false }

func (r *Return) String() string { return "Return[" + render(r.Value) + "]" }

func anyOptional(subs []covenant.Constraint) bool {
	for _, s := range subs {
		if s.Optional() {
			return true
		}
	}
	return false
}

func renderSubs(name string, subs []covenant.Constraint) string {
	parts := make([]string, len(subs))
	for i, s := range subs {
		parts[i] = render(s)
	}
	return name + "[" + strings.Join(parts, ", ") + "]"
}

func render(c covenant.Constraint) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}
