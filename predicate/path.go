package predicate

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

type pathPred struct {
	path string
	sub  Predicate
}

// Path extracts a gjson path from a map- or JSON-shaped candidate and
// tests the extracted value with sub. A nil sub only asserts the path
// exists. Candidates that cannot be treated as JSON never match.
func Path(path string, sub Predicate) Predicate {
	return pathPred{path: path, sub: sub}
}

func (p pathPred) Match(v interface{}) bool {
	var doc []byte
	switch t := v.(type) {
	case string:
		doc = []byte(t)
	case []byte:
		doc = t
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return false
		}
		doc = b
	}

	res := gjson.GetBytes(doc, p.path)
	if !res.Exists() {
		return false
	}
	if p.sub == nil {
		return true
	}
	return Safe(p.sub, res.Value())
}

func (p pathPred) String() string {
	if p.sub == nil {
		return "path(" + p.path + ")"
	}
	return "path(" + p.path + ": " + p.sub.String() + ")"
}
