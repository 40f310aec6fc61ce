package predicate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		want  interface{}
		value interface{}
		match bool
	}{
		{name: "equal ints", want: 42, value: 42, match: true},
		{name: "unequal ints", want: 42, value: 43, match: false},
		{name: "different types", want: 42, value: "42", match: false},
		{name: "nil matches nil", want: nil, value: nil, match: true},
		{name: "deep equality on slices", want: []int{1, 2}, value: []int{1, 2}, match: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, Equal(tt.want).Match(tt.value))
		})
	}
}

func TestKindSets(t *testing.T) {
	assert.True(t, Int().Match(5))
	assert.True(t, Int().Match(int64(5)))
	assert.True(t, Int().Match(uint8(5)))
	assert.False(t, Int().Match(5.0))
	assert.False(t, Int().Match("5"))
	assert.False(t, Int().Match(nil))

	assert.True(t, Float().Match(1.5))
	assert.True(t, Float().Match(float32(1.5)))
	assert.False(t, Float().Match(1))

	assert.True(t, String().Match("x"))
	assert.False(t, String().Match([]byte("x")))

	assert.True(t, Bool().Match(false))
	assert.False(t, Bool().Match(0))

	assert.True(t, Any().Match(nil))
	assert.True(t, Any().Match(struct{}{}))
}

func TestTypeTag(t *testing.T) {
	type widget struct{ n int }

	assert.True(t, TypeOf(widget{}).Match(widget{n: 1}))
	assert.False(t, TypeOf(widget{}).Match(&widget{}))
	assert.False(t, TypeOf(widget{}).Match(nil))
	assert.Equal(t, "predicate.widget", TypeOf(widget{}).String())
}

func TestBetween(t *testing.T) {
	p := Between(0, 5)
	assert.True(t, p.Match(0))
	assert.True(t, p.Match(5))
	assert.True(t, p.Match(2.5))
	assert.False(t, p.Match(-1))
	assert.False(t, p.Match(6))
	assert.False(t, p.Match("3"))
	assert.Equal(t, "0..5", p.String())
}

func TestPattern(t *testing.T) {
	p := Pattern(regexp.MustCompile(`^a+$`))
	assert.True(t, p.Match("aaa"))
	assert.True(t, p.Match([]byte("a")))
	assert.False(t, p.Match("ab"))
	assert.False(t, p.Match(7))
	assert.Equal(t, "/^a+$/", p.String())
}

func TestFunc(t *testing.T) {
	even := Func("even", func(v interface{}) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	assert.True(t, even.Match(4))
	assert.False(t, even.Match(3))
	assert.Equal(t, "even()", even.String())
}

func TestSafeRecoversPanics(t *testing.T) {
	angry := Func("angry", func(v interface{}) bool {
		panic("no")
	})
	assert.False(t, Safe(angry, 1))

	// Safe must not mask a genuine match.
	assert.True(t, Safe(Equal(1), 1))
}
