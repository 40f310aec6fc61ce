package covenant

import (
	"fmt"
	"reflect"
)

// Callable is the canonical invocable form produced by contract wrapping.
// Arbitrary Go funcs are accepted as contract targets; wrapping always
// yields a Callable so downstream code invokes wrapped values uniformly.
type Callable func(args ...interface{}) (interface{}, error)

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent is the sentinel distinguishing "no argument supplied at this
// position" from an explicit nil argument.
var Absent interface{} = absent{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v interface{}) bool {
	_, ok := v.(absent)
	return ok
}

// IsCallable reports whether v can be invoked: a Callable or any Go func.
func IsCallable(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Callable); ok {
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// Invoke calls v with args. Callable values are called directly; other
// funcs go through reflection, with a trailing error result split off
// when the func declares one. Funcs with more than one non-error result
// are rejected.
func Invoke(v interface{}, args ...interface{}) (interface{}, error) {
	if f, ok := v.(Callable); ok {
		return f(args...)
	}
	fv := reflect.ValueOf(v)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("covenant: value of type %T is not callable", v)
	}
	in, err := reflectArgs(fv.Type(), args)
	if err != nil {
		return nil, err
	}
	return splitResults(fv.Call(in))
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func reflectArgs(ft reflect.Type, args []interface{}) ([]reflect.Value, error) {
	numIn := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("covenant: func takes at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("covenant: func takes %d arguments, got %d", numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if ft.IsVariadic() && i >= numIn-1 {
			want = ft.In(numIn - 1).Elem()
		} else {
			want = ft.In(i)
		}
		av, err := conform(arg, want)
		if err != nil {
			return nil, fmt.Errorf("covenant: argument %d: %w", i, err)
		}
		in[i] = av
	}
	return in, nil
}

func conform(arg interface{}, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", want)
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if av.Type().ConvertibleTo(want) {
		return av.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", av.Type(), want)
}

func splitResults(outs []reflect.Value) (interface{}, error) {
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		if outs[0].Type() == errType {
			return nil, asError(outs[0])
		}
		return outs[0].Interface(), nil
	case 2:
		if outs[1].Type() != errType {
			return nil, fmt.Errorf("covenant: func returns two non-error values")
		}
		return outs[0].Interface(), asError(outs[1])
	default:
		return nil, fmt.Errorf("covenant: func returns %d values, at most 2 supported", len(outs))
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
