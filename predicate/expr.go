package predicate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type exprPred struct {
	src     string
	program *vm.Program
}

// Expr compiles an expr-lang expression into a predicate. The candidate
// is bound as "value" in the expression environment, so "value > 3" or
// "len(value) < 10" read naturally. Evaluation errors are non-matches.
func Expr(src string) (Predicate, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling predicate expression: %w", err)
	}
	return &exprPred{src: src, program: program}, nil
}

// MustExpr compiles src and panics when it is invalid.
func MustExpr(src string) Predicate {
	p, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *exprPred) Match(v interface{}) bool {
	out, err := expr.Run(p.program, map[string]interface{}{"value": v})
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func (p *exprPred) String() string { return "expr(" + p.src + ")" }
