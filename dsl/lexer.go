package dsl

import "github.com/alecthomas/participle/v2/lexer"

// sigLexer defines the token rules for contract signature strings.
var sigLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `\s+`, Action: nil},
		{Name: "Ellipsis", Pattern: `\.\.\.`, Action: nil},
		{Name: "Range", Pattern: `\.\.`, Action: nil},
		{Name: "Float", Pattern: `-?\d+\.\d+`, Action: nil},
		{Name: "Int", Pattern: `-?\d+`, Action: nil},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"|'(?:\\.|[^'])*'`, Action: nil},
		{Name: "Pattern", Pattern: `/(?:\\.|[^/\n])+/`, Action: nil},
		{Name: "Arrow", Pattern: `->`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Punct", Pattern: `[(),\[\]{}:&]`, Action: nil},
	},
})
