package matcher

import (
	"reflect"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
)

// listItems extracts the elements of a list-shaped value. Values that
// are not slices or arrays report false so the caller fails the pair
// instead of crashing.
func listItems(v interface{}) ([]interface{}, bool) {
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func listShaped(v interface{}) bool {
	_, ok := listItems(v)
	return ok
}

func mapShaped(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Map
}

// mapLookup fetches v[key] for any map-shaped v. The third result is
// false when v is not a map at all.
func mapLookup(v interface{}, key interface{}) (interface{}, bool, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false, false
	}
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
		return nil, false, true
	}
	mv := rv.MapIndex(kv)
	if !mv.IsValid() {
		return nil, false, true
	}
	return mv.Interface(), true, true
}

// rewritesValue reports whether a successful checkPair on (c, v) replaces
// the value: destructured containers are rebuilt, and callables matched
// by a parameterized executable constraint are wrapped.
func rewritesValue(c covenant.Constraint, v interface{}) bool {
	switch c.(type) {
	case *constraint.List:
		_, iface := v.([]interface{})
		return iface
	case *constraint.Map:
		rv := reflect.ValueOf(v)
		return rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Elem().Kind() == reflect.Interface
	default:
		return constraint.SignatureOf(c) != nil && covenant.IsCallable(v)
	}
}

// mapRewriter lazily copies a map when one of its checked values is
// replaced. Only maps with interface{} element types can hold wrapped
// values; others are left untouched.
type mapRewriter struct {
	orig       reflect.Value
	rewritable bool
	copied     reflect.Value
}

func newMapRewriter(v interface{}) *mapRewriter {
	rv := reflect.ValueOf(v)
	rewritable := rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Elem().Kind() == reflect.Interface
	return &mapRewriter{orig: rv, rewritable: rewritable}
}

func (r *mapRewriter) set(key, val interface{}) {
	if !r.rewritable {
		return
	}
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !kv.Type().AssignableTo(r.orig.Type().Key()) {
		return
	}
	if !r.copied.IsValid() {
		r.copied = reflect.MakeMapWithSize(r.orig.Type(), r.orig.Len())
		iter := r.orig.MapRange()
		for iter.Next() {
			r.copied.SetMapIndex(iter.Key(), iter.Value())
		}
	}
	r.copied.SetMapIndex(kv, reflect.ValueOf(val))
}

func (r *mapRewriter) result() (interface{}, bool) {
	if !r.copied.IsValid() {
		return nil, false
	}
	return r.copied.Interface(), true
}
