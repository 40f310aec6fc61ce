// Package dsl parses textual contract signatures into contracts, so
// annotations can be declared as strings or loaded from configuration:
//
//	c, err := dsl.Parse("(int, ...string -> int)")
//
// The grammar covers type tags (int, float, string, bool, any, none,
// nil, func), literals, ranges "0..5", patterns "/re/", the combinators
// all/any/one/not/maybe, expr and path predicates, splats "...C", nested
// lists and maps, callables "func(sig)", and a block slot "&(sig)".
package dsl

import (
	"fmt"
	"regexp"

	"github.com/alecthomas/participle/v2"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/constraint"
	"github.com/covenant/covenant-go/contract"
	"github.com/covenant/covenant-go/predicate"
)

var sigParser = participle.MustBuild[signatureNode](
	participle.Lexer(sigLexer),
	participle.UseLookahead(2),
	participle.Elide("Whitespace"),
)

// Parse builds a contract from a signature string.
func Parse(signature string, opts ...contract.Option) (*contract.Contract, error) {
	node, err := sigParser.ParseString("", signature)
	if err != nil {
		return nil, fmt.Errorf("parsing signature %q: %w", signature, err)
	}
	spec, err := buildSpec(node)
	if err != nil {
		return nil, fmt.Errorf("signature %q: %w", signature, err)
	}
	return contract.New(spec, opts...)
}

// MustParse is Parse, panicking on an invalid signature.
func MustParse(signature string, opts ...contract.Option) *contract.Contract {
	c, err := Parse(signature, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func buildSpec(node *signatureNode) ([]interface{}, error) {
	spec := make([]interface{}, 0, len(node.Params)+1)
	for _, p := range node.Params {
		switch {
		case p.Block != nil:
			nested, err := buildNested(p.Block)
			if err != nil {
				return nil, err
			}
			spec = append(spec, constraint.NewBlock(nested))
		case p.Splat != nil:
			elem, err := buildValue(p.Splat)
			if err != nil {
				return nil, err
			}
			spec = append(spec, constraint.NewSplat(elem))
		default:
			c, err := buildValue(p.Value)
			if err != nil {
				return nil, err
			}
			spec = append(spec, c)
		}
	}
	if node.Ret != nil {
		ret, err := buildValue(node.Ret)
		if err != nil {
			return nil, err
		}
		spec = append(spec, constraint.NewReturn(ret))
	}
	return spec, nil
}

func buildNested(node *signatureNode) (covenant.Signature, error) {
	spec, err := buildSpec(node)
	if err != nil {
		return nil, err
	}
	return contract.New(spec)
}

func buildValue(node *valueNode) (covenant.Constraint, error) {
	switch {
	case node.Func != nil:
		nested, err := buildNested(node.Func)
		if err != nil {
			return nil, err
		}
		return constraint.NewExecutable(nested), nil
	case node.Call != nil:
		return buildCall(node.Call)
	case node.Range != nil:
		return constraint.NewAtom(predicate.Between(float64(node.Range.Lo), float64(node.Range.Hi))), nil
	case node.Pattern != nil:
		src := *node.Pattern
		re, err := regexp.Compile(src[1 : len(src)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", src, err)
		}
		return constraint.NewAtom(predicate.Pattern(re)), nil
	case node.Str != nil:
		return constraint.NewAtom(predicate.Equal(unquote(*node.Str))), nil
	case node.Float != nil:
		return constraint.NewAtom(predicate.Equal(*node.Float)), nil
	case node.Int != nil:
		return constraint.NewAtom(predicate.Equal(int(*node.Int))), nil
	case node.List != nil:
		return buildList(node.List)
	case node.Map != nil:
		return buildMap(node.Map)
	case node.Ident != nil:
		return buildIdent(*node.Ident)
	default:
		return nil, fmt.Errorf("empty constraint")
	}
}

func buildCall(node *callNode) (covenant.Constraint, error) {
	args := make([]covenant.Constraint, len(node.Args))
	for i, a := range node.Args {
		c, err := buildValue(a)
		if err != nil {
			return nil, err
		}
		args[i] = c
	}
	switch node.Name {
	case "all":
		return constraint.NewAnd(args...), nil
	case "any":
		return constraint.NewOr(args...), nil
	case "one":
		return constraint.NewXor(args...), nil
	case "not":
		if len(args) != 1 {
			return nil, fmt.Errorf("not() takes exactly one constraint")
		}
		return constraint.NewNot(args[0]), nil
	case "maybe":
		if len(args) != 1 {
			return nil, fmt.Errorf("maybe() takes exactly one constraint")
		}
		return constraint.NewMaybe(args[0]), nil
	case "expr":
		if len(node.Args) != 1 || node.Args[0].Str == nil {
			return nil, fmt.Errorf("expr() takes a single string argument")
		}
		p, err := predicate.Expr(unquote(*node.Args[0].Str))
		if err != nil {
			return nil, err
		}
		return constraint.NewAtom(p), nil
	case "path":
		if len(node.Args) < 1 || len(node.Args) > 2 || node.Args[0].Str == nil {
			return nil, fmt.Errorf("path() takes a string path and an optional constraint")
		}
		var sub predicate.Predicate
		if len(node.Args) == 2 {
			c, err := buildValue(node.Args[1])
			if err != nil {
				return nil, err
			}
			atom, ok := c.(*constraint.Atom)
			if !ok {
				return nil, fmt.Errorf("path() sub-constraint must be atomic")
			}
			sub = atom.Pred
		}
		return constraint.NewAtom(predicate.Path(unquote(*node.Args[0].Str), sub)), nil
	default:
		return nil, fmt.Errorf("unknown combinator %q", node.Name)
	}
}

func buildList(node *listNode) (covenant.Constraint, error) {
	elems := make([]covenant.Constraint, len(node.Elems))
	for i, e := range node.Elems {
		if e.Splat != nil {
			inner, err := buildValue(e.Splat)
			if err != nil {
				return nil, err
			}
			elems[i] = constraint.NewSplat(inner)
			continue
		}
		c, err := buildValue(e.Value)
		if err != nil {
			return nil, err
		}
		elems[i] = c
	}
	return constraint.NewList(elems...), nil
}

func buildMap(node *mapNode) (covenant.Constraint, error) {
	entries := make([]constraint.MapEntry, len(node.Entries))
	for i, e := range node.Entries {
		c, err := buildValue(e.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = constraint.MapEntry{Key: unquote(e.Key), Constraint: c}
	}
	return constraint.NewMap(entries...), nil
}

func buildIdent(name string) (covenant.Constraint, error) {
	switch name {
	case "int", "integer":
		return constraint.NewAtom(predicate.Int()), nil
	case "float":
		return constraint.NewAtom(predicate.Float()), nil
	case "string":
		return constraint.NewAtom(predicate.String()), nil
	case "bool":
		return constraint.NewAtom(predicate.Bool()), nil
	case "any":
		return constraint.NewAtom(predicate.Any()), nil
	case "none":
		return constraint.NewNone(), nil
	case "nil", "null":
		return constraint.NewAtom(predicate.Equal(nil)), nil
	case "func":
		return constraint.NewExecutable(nil), nil
	default:
		return nil, fmt.Errorf("unknown type tag %q", name)
	}
}
