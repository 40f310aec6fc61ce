package constraint

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/predicate"
)

// Coerce converts a raw specification value into a constraint. Existing
// constraints and predicates pass through; reflect.Type values become
// type tags, compiled regexps become patterns, bool-returning funcs
// become user predicates, slices and string-keyed maps destructure
// recursively, and anything else becomes an exact-equality atom.
func Coerce(v interface{}) covenant.Constraint {
	switch t := v.(type) {
	case covenant.Constraint:
		return t
	case Predicate:
		return NewAtom(t)
	case reflect.Type:
		return NewAtom(predicate.Type(t))
	case *regexp.Regexp:
		return NewAtom(predicate.Pattern(t))
	case func(interface{}) bool:
		return NewAtom(predicate.Func("fn", t))
	case []interface{}:
		elems := make([]covenant.Constraint, len(t))
		for i, e := range t {
			elems[i] = Coerce(e)
		}
		return NewList(elems...)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, len(keys))
		for i, k := range keys {
			entries[i] = MapEntry{Key: k, Constraint: Coerce(t[k])}
		}
		return NewMap(entries...)
	default:
		return NewAtom(predicate.Equal(v))
	}
}

// CoerceAll converts a raw specification slice into constraints.
func CoerceAll(raw []interface{}) []covenant.Constraint {
	out := make([]covenant.Constraint, len(raw))
	for i, v := range raw {
		out[i] = Coerce(v)
	}
	return out
}

// SignatureOf returns the nested signature carried by executable-shaped
// constraints, or nil.
func SignatureOf(c covenant.Constraint) covenant.Signature {
	switch t := c.(type) {
	case *Executable:
		return t.Sig
	case *Block:
		return t.Sig
	default:
		return nil
	}
}

// Describe renders a constraint sequence the way contracts render their
// positional lists.
func Describe(cons []covenant.Constraint) string {
	parts := make([]string, len(cons))
	for i, c := range cons {
		if c == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
