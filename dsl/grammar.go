package dsl

import "strconv"

// signatureNode is the parsed form of one contract signature, e.g.
// "(int, ...string -> int)".
type signatureNode struct {
	Params []*paramNode `"(" ( @@ ( "," @@ )* )?`
	Ret    *valueNode   `( Arrow @@ )? ")"`
}

// paramNode is one positional slot: a block, a splat, or a plain value
// constraint.
type paramNode struct {
	Block *signatureNode `  "&" @@`
	Splat *valueNode     `| Ellipsis @@`
	Value *valueNode     `| @@`
}

type valueNode struct {
	Func    *signatureNode `  "func" @@`
	Call    *callNode      `| @@`
	Range   *rangeNode     `| @@`
	Pattern *string        `| @Pattern`
	Str     *string        `| @String`
	Float   *float64       `| @Float`
	Int     *int64         `| @Int`
	List    *listNode      `| @@`
	Map     *mapNode       `| @@`
	Ident   *string        `| @Ident`
}

type callNode struct {
	Name string       `@("all" | "any" | "one" | "not" | "maybe" | "expr" | "path")`
	Args []*valueNode `"(" @@ ( "," @@ )* ")"`
}

type rangeNode struct {
	Lo int64 `@Int`
	Hi int64 `Range @Int`
}

type listNode struct {
	Elems []*elemNode `"[" ( @@ ( "," @@ )* )? "]"`
}

type elemNode struct {
	Splat *valueNode `  Ellipsis @@`
	Value *valueNode `| @@`
}

type mapNode struct {
	Entries []*entryNode `"{" ( @@ ( "," @@ )* )? "}"`
}

type entryNode struct {
	Key   string     `( @Ident | @String )`
	Value *valueNode `":" @@`
}

func unquote(value string) string {
	if value == "" {
		return value
	}
	unquoted, err := strconv.Unquote(value)
	if err != nil {
		if len(value) >= 2 && (value[0] == '\'' || value[0] == '"') {
			return value[1 : len(value)-1]
		}
		return value
	}
	return unquoted
}
