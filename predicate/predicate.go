// Package predicate provides the value tests behind atomic constraints:
// exact equality, type tags, numeric ranges, patterns, and user functions.
package predicate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
)

// Predicate is a single-value test. Implementations must be pure from
// the matcher's point of view; a panic inside Match is converted to a
// non-match by Safe at the matcher boundary.
type Predicate interface {
	Match(v interface{}) bool
	String() string
}

// Safe runs p.Match, converting a panic into a non-match.
func Safe(p Predicate, v interface{}) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return p.Match(v)
}

// --- exact value

type exact struct{ want interface{} }

// Equal matches values deeply equal to want.
func Equal(want interface{}) Predicate { return exact{want: want} }

func (p exact) Match(v interface{}) bool { return reflect.DeepEqual(v, p.want) }

func (p exact) String() string {
	if p.want == nil {
		return "nil"
	}
	return fmt.Sprintf("%#v", p.want)
}

// --- type tags

type typeTag struct{ t reflect.Type }

// Type matches values assignable to t. For interface types this is an
// implements check.
func Type(t reflect.Type) Predicate { return typeTag{t: t} }

// TypeOf matches values assignable to the dynamic type of example.
func TypeOf(example interface{}) Predicate { return Type(reflect.TypeOf(example)) }

func (p typeTag) Match(v interface{}) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(p.t)
}

func (p typeTag) String() string { return p.t.String() }

type kindSet struct {
	name  string
	kinds []reflect.Kind
}

func (p kindSet) Match(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	for _, want := range p.kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p kindSet) String() string { return p.name }

// Int matches any integer value, signed or unsigned, of any width.
func Int() Predicate {
	return kindSet{name: "int", kinds: []reflect.Kind{
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
	}}
}

// Float matches float32 and float64 values.
func Float() Predicate {
	return kindSet{name: "float", kinds: []reflect.Kind{reflect.Float32, reflect.Float64}}
}

// String matches string values.
func String() Predicate {
	return kindSet{name: "string", kinds: []reflect.Kind{reflect.String}}
}

// Bool matches boolean values.
func Bool() Predicate {
	return kindSet{name: "bool", kinds: []reflect.Kind{reflect.Bool}}
}

type anyValue struct{}

// Any matches every value, including nil.
func Any() Predicate { return anyValue{} }

func (anyValue) Match(interface{}) bool { return true }

func (anyValue) String() string { return "any" }

// --- numeric range

type span struct{ lo, hi float64 }

// Between matches numeric values within [lo, hi], inclusive on both ends.
func Between(lo, hi float64) Predicate { return span{lo: lo, hi: hi} }

func (p span) Match(v interface{}) bool {
	f, ok := toFloat(v)
	return ok && f >= p.lo && f <= p.hi
}

func (p span) String() string {
	return formatBound(p.lo) + ".." + formatBound(p.hi)
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// --- pattern

type pattern struct{ re *regexp.Regexp }

// Pattern matches string-shaped values against re.
func Pattern(re *regexp.Regexp) Predicate { return pattern{re: re} }

// MustPattern compiles expr and panics when it is invalid.
func MustPattern(expr string) Predicate { return Pattern(regexp.MustCompile(expr)) }

func (p pattern) Match(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return p.re.MatchString(t)
	case []byte:
		return p.re.Match(t)
	case fmt.Stringer:
		return p.re.MatchString(t.String())
	default:
		return false
	}
}

func (p pattern) String() string { return "/" + p.re.String() + "/" }

// --- user function

type userFunc struct {
	name string
	fn   func(interface{}) bool
}

// Func wraps an arbitrary user predicate. The name is used only for
// rendering.
func Func(name string, fn func(interface{}) bool) Predicate {
	if name == "" {
		name = "fn"
	}
	return userFunc{name: name, fn: fn}
}

func (p userFunc) Match(v interface{}) bool { return p.fn(v) }

func (p userFunc) String() string { return p.name + "()" }
