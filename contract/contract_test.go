package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
	"github.com/covenant/covenant-go/predicate"
)

func intAtom() covenant.Constraint    { return constraint.NewAtom(predicate.Int()) }
func stringAtom() covenant.Constraint { return constraint.NewAtom(predicate.String()) }

func TestNewRejectsMalformedSpecs(t *testing.T) {
	anything := MustNew([]interface{}{intAtom()})

	tests := []struct {
		name string
		spec []interface{}
	}{
		{name: "non-final return", spec: []interface{}{constraint.NewReturn(intAtom()), intAtom()}},
		{name: "return without parameter", spec: []interface{}{constraint.NewReturn(nil)}},
		{name: "splat without parameter", spec: []interface{}{constraint.NewSplat(nil)}},
		{name: "two splats in one list", spec: []interface{}{constraint.NewSplat(intAtom()), constraint.NewSplat(stringAtom())}},
		{name: "two splats in a nested list", spec: []interface{}{constraint.NewList(constraint.NewSplat(intAtom()), constraint.NewSplat(intAtom()))}},
		{name: "nested return in list", spec: []interface{}{constraint.NewList(constraint.NewReturn(intAtom()))}},
		{name: "nested return in combinator", spec: []interface{}{constraint.NewAnd(intAtom(), constraint.NewReturn(intAtom()))}},
		{name: "nested return in map value", spec: []interface{}{constraint.NewMap(constraint.MapEntry{Key: "r", Constraint: constraint.NewReturn(intAtom())})}},
		{name: "negated parameterized executable", spec: []interface{}{constraint.NewNot(constraint.NewExecutable(anything))}},
		{name: "negated parameterized block", spec: []interface{}{constraint.NewNot(constraint.NewBlock(anything))}},
		{name: "combinator with one child", spec: []interface{}{constraint.NewAnd(intAtom())}},
		{name: "block before a positional", spec: []interface{}{constraint.NewBlock(nil), intAtom()}},
		{name: "two blocks", spec: []interface{}{constraint.NewBlock(nil), constraint.NewBlock(nil)}},
		{name: "block nested in a list", spec: []interface{}{constraint.NewList(constraint.NewBlock(nil))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			var specErr *covenant.SpecError
			require.ErrorAs(t, err, &specErr, "expected a malformed-specification error")
			assert.NotEmpty(t, specErr.Signature, "errors carry the rendered signature")
		})
	}
}

func TestNewAcceptsLegalShapes(t *testing.T) {
	tests := []struct {
		name string
		spec []interface{}
	}{
		{name: "empty", spec: nil},
		{name: "plain positional", spec: []interface{}{intAtom(), stringAtom()}},
		{name: "trailing return", spec: []interface{}{intAtom(), constraint.NewReturn(intAtom())}},
		{name: "block then return", spec: []interface{}{intAtom(), constraint.NewBlock(nil), constraint.NewReturn(intAtom())}},
		{name: "splat per scope", spec: []interface{}{constraint.NewSplat(intAtom()), constraint.NewList(constraint.NewSplat(stringAtom()))}},
		{name: "negated bare executable", spec: []interface{}{constraint.NewNot(constraint.NewExecutable(nil))}},
		{name: "raw values coerced", spec: []interface{}{42, "tag", predicate.Int()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			assert.NoError(t, err)
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]interface{}{constraint.NewSplat(nil)})
	})
}

func TestValidateArguments(t *testing.T) {
	c := MustNew([]interface{}{intAtom(), stringAtom()})

	_, ok, err := c.ValidateArguments([]interface{}{1, "a"})
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = c.ValidateArguments([]interface{}{1, 2})
	assert.False(t, ok)
	var v *covenant.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "string", v.Constraint.String())
	assert.Equal(t, 2, v.Value)
}

func TestUnconstrainedContractAcceptsAnything(t *testing.T) {
	c := MustNew(nil)
	_, ok, err := c.ValidateArguments([]interface{}{1, "two", 3.0})
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateReturn(t *testing.T) {
	c := MustNew([]interface{}{intAtom(), constraint.NewReturn(intAtom())})

	_, ok, err := c.ValidateReturn(3)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = c.ValidateReturn("three")
	assert.False(t, ok)
	assert.Error(t, err)

	// No return constraint declared: always a no-op success.
	plain := MustNew([]interface{}{intAtom()})
	_, ok, err = plain.ValidateReturn("anything")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateBlock(t *testing.T) {
	c := MustNew([]interface{}{constraint.NewBlock(nil)})

	_, ok, err := c.ValidateBlock(func() {})
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = c.ValidateBlock(nil)
	assert.False(t, ok)
	assert.Error(t, err, "a declared block is required")

	_, ok, err = c.ValidateBlock(42)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestPerContractPolicies(t *testing.T) {
	var logged []covenant.Event
	logOnly := MustNew(
		[]interface{}{intAtom()},
		WithOnFailure(func(e covenant.Event) error {
			logged = append(logged, e)
			return nil
		}),
	)
	strict := MustNew([]interface{}{intAtom()})

	_, ok, err := logOnly.ValidateArguments([]interface{}{"oops"})
	assert.NoError(t, err)
	assert.True(t, ok, "log-only policies recover failures")
	assert.Len(t, logged, 1)

	_, ok, err = strict.ValidateArguments([]interface{}{"oops"})
	assert.False(t, ok)
	assert.Error(t, err, "policies are per contract, not global")
}

func TestSilentAbortPolicy(t *testing.T) {
	c := MustNew(
		[]interface{}{intAtom()},
		WithOnFailure(func(covenant.Event) error { return covenant.ErrHalt }),
	)
	_, ok, err := c.ValidateArguments([]interface{}{"oops"})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestRenderingIsStable(t *testing.T) {
	c := MustNew([]interface{}{
		constraint.NewAnd(intAtom(), constraint.NewAtom(predicate.Between(0, 5))),
		constraint.NewSplat(stringAtom()),
		constraint.NewBlock(nil),
		constraint.NewReturn(intAtom()),
	})

	want := "(And[int, 0..5], Splat[string], &func -> int)"
	assert.Equal(t, want, c.String())
	assert.Equal(t, c.String(), c.String())
}

func TestNestedContractEnforcedUnderDeclaringPolicy(t *testing.T) {
	nested := MustNew([]interface{}{intAtom()})

	declaring := errors.New("declaring policy fired")
	outer := MustNew(
		[]interface{}{constraint.NewExecutable(nested)},
		WithOnFailure(func(covenant.Event) error { return declaring }),
	)

	out, ok, err := outer.ValidateArguments([]interface{}{func(x int) int { return x }})
	require.NoError(t, err)
	require.True(t, ok)

	wrapped := out[0].(covenant.Callable)
	_, err = wrapped("not an int")
	assert.ErrorIs(t, err, declaring, "the nested contract runs under the policy of the contract that declared it")
}
