package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpr(t *testing.T) {
	p, err := Expr("value > 3")
	require.NoError(t, err)

	assert.True(t, p.Match(4))
	assert.False(t, p.Match(2))
	assert.False(t, p.Match("four"))
	assert.Equal(t, "expr(value > 3)", p.String())
}

func TestExprOverStrings(t *testing.T) {
	p, err := Expr(`len(value) <= 3 && value startsWith "a"`)
	require.NoError(t, err)

	assert.True(t, p.Match("abc"))
	assert.False(t, p.Match("abcd"))
	assert.False(t, p.Match("xyz"))
}

func TestExprCompileError(t *testing.T) {
	_, err := Expr("value >")
	assert.Error(t, err)
}

func TestMustExprPanics(t *testing.T) {
	assert.Panics(t, func() { MustExpr("value >") })
}
