package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	doc := map[string]interface{}{
		"user": map[string]interface{}{"name": "ada", "age": 36},
	}

	tests := []struct {
		name  string
		pred  Predicate
		value interface{}
		match bool
	}{
		{name: "existence only", pred: Path("user.name", nil), value: doc, match: true},
		{name: "missing path", pred: Path("user.email", nil), value: doc, match: false},
		{name: "sub-predicate passes", pred: Path("user.age", Between(0, 120)), value: doc, match: true},
		{name: "sub-predicate fails", pred: Path("user.age", Between(0, 18)), value: doc, match: false},
		{name: "json string input", pred: Path("user.name", nil), value: `{"user":{"name":"ada"}}`, match: true},
		{name: "unmarshalable input", pred: Path("user.name", nil), value: func() {}, match: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.pred.Match(tt.value))
		})
	}
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "path(user.name)", Path("user.name", nil).String())
	assert.Equal(t, "path(user.age: 0..120)", Path("user.age", Between(0, 120)).String())
}
