package query

import (
	"fmt"

	"github.com/quelldb/quell/ast"
)

// CaseChain builds a CASE expression branch by branch. A searched case
// starts from Case(); a simple case starts from an expression's When, which
// compares the operand against each branch value.
//
// Otherwise supplies the mandatory fallback. End finalizes without one,
// which the compiler rejects with IncompleteCaseExpression.
type CaseChain struct {
	operand *Expr
	whens   []ast.CaseWhen
	kind    ast.Kind
	err     error
}

// CaseWhenStep is a branch awaiting its Then result.
type CaseWhenStep struct {
	chain CaseChain
	cond  Expr
}

// Case starts a searched CASE expression.
func Case() CaseChain { return CaseChain{} }

// When opens the next branch. For a searched case the argument must be a
// predicate; for a simple case it is compared to the operand with equality.
func (c CaseChain) When(v any) CaseWhenStep {
	if c.err != nil {
		return CaseWhenStep{chain: c}
	}
	var cond Expr
	if c.operand != nil {
		cond = c.operand.Eq(v)
	} else {
		e, ok := v.(Expr)
		if !ok {
			c.err = fmt.Errorf("%w: searched case requires a predicate branch", ast.ErrTypeMismatch)
			return CaseWhenStep{chain: c}
		}
		cond = e
	}
	if cond.err == nil {
		if err := ast.CheckBool("WHEN", cond.Kind()); err != nil {
			cond = errExpr(err)
		}
	}
	return CaseWhenStep{chain: c, cond: cond}
}

// When starts a simple CASE comparing this expression against branch values.
func (e Expr) When(v any) CaseWhenStep {
	c := CaseChain{operand: &e, err: e.err}
	return c.When(v)
}

// Then closes the branch with its result. All branch results must share one
// kind.
func (s CaseWhenStep) Then(v any) CaseChain {
	c := s.chain
	if c.err != nil {
		return c
	}
	result := toOperand(v)
	if err := firstErr(s.cond.err, result.err); err != nil {
		c.err = err
		return c
	}
	if len(c.whens) == 0 {
		c.kind = result.Kind()
	} else if err := ast.CheckComparable("THEN", c.kind, result.Kind()); err != nil {
		c.err = err
		return c
	}
	whens := make([]ast.CaseWhen, len(c.whens), len(c.whens)+1)
	copy(whens, c.whens)
	c.whens = append(whens, ast.CaseWhen{Cond: s.cond.node, Result: result.node})
	return c
}

// Otherwise supplies the fallback and finalizes the expression.
func (c CaseChain) Otherwise(v any) Expr {
	if c.err != nil {
		return errExpr(c.err)
	}
	if len(c.whens) == 0 {
		return errExpr(fmt.Errorf("%w: case requires at least one when branch", ast.ErrTypeMismatch))
	}
	fallback := toOperand(v)
	if fallback.err != nil {
		return fallback
	}
	if err := ast.CheckComparable("OTHERWISE", c.kind, fallback.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.CaseExpr{Whens: c.whens, Else: fallback.node, ResultKind: c.kind}}
}

// End finalizes without a fallback. The resulting plan fails compilation
// with IncompleteCaseExpression; it exists so the omission is a diagnosed
// error rather than a silent NULL.
func (c CaseChain) End() Expr {
	if c.err != nil {
		return errExpr(c.err)
	}
	return Expr{node: &ast.CaseExpr{Whens: c.whens, ResultKind: c.kind}}
}
