package query

import "github.com/quelldb/quell/ast"

// OrderSpec is one sort key with direction and explicit null placement.
// When neither NullsFirst nor NullsLast is called, the placement of NULLs is
// store-defined and must not be relied on.
type OrderSpec struct {
	expr  ast.Node
	desc  bool
	nulls ast.NullOrdering
	err   error
}

// Asc sorts ascending by this expression.
func (e Expr) Asc() OrderSpec { return OrderSpec{expr: e.node, err: e.err} }

// Desc sorts descending by this expression.
func (e Expr) Desc() OrderSpec { return OrderSpec{expr: e.node, desc: true, err: e.err} }

// NullsFirst places NULLs before all values.
func (o OrderSpec) NullsFirst() OrderSpec {
	o.nulls = ast.NullsFirst
	return o
}

// NullsLast places NULLs after all values.
func (o OrderSpec) NullsLast() OrderSpec {
	o.nulls = ast.NullsLast
	return o
}

func (o OrderSpec) clause() *ast.OrderByClause {
	return &ast.OrderByClause{Expr: o.expr, Desc: o.desc, Nulls: o.nulls}
}
