// Package query is the fluent, immutable query builder. Expressions are pure
// values over schema descriptors; every combinator validates operand kinds at
// construction time and carries the first failure through the chain, so a
// mistyped expression surfaces from Build before anything executes.
package query

import (
	"fmt"

	"github.com/quelldb/quell/ast"
	"github.com/quelldb/quell/schema"
)

// Expr is a typed expression handle. The zero value is invalid; construct
// through Col, Val, Constant, Sub, the aggregate functions, or a combinator.
type Expr struct {
	node ast.Node
	err  error
}

// Node exposes the underlying AST node.
func (e Expr) Node() ast.Node { return e.node }

// Err reports the first construction failure in the chain that produced e.
func (e Expr) Err() error { return e.err }

// Kind is the value kind the expression evaluates to.
func (e Expr) Kind() ast.Kind {
	if e.node == nil {
		return ast.KindNone
	}
	return e.node.Kind()
}

func errExpr(err error) Expr { return Expr{err: err} }

// Col returns the typed handle for a declared field of d, qualified by d's
// alias.
func Col(d *schema.Descriptor, name string) Expr {
	f, ok := d.Col(name)
	if !ok {
		return errExpr(fmt.Errorf("query: %s has no field %q", d.Name, name))
	}
	return Expr{node: f}
}

// Val lifts a Go literal into an expression; it compiles to a bound
// parameter, never to inline SQL.
func Val(v any) Expr {
	val, ok := ast.NewValue(v)
	if !ok {
		return errExpr(fmt.Errorf("%w: unsupported literal type %T", ast.ErrTypeMismatch, v))
	}
	return Expr{node: val}
}

// Constant is Val under the name the projection examples use.
func Constant(v any) Expr { return Val(v) }

// Sub embeds a built query as a subquery expression. The subquery must
// project exactly one column; its kind becomes the expression's kind.
func Sub(b Builder) Expr {
	stmt, err := b.Build()
	if err != nil {
		return errExpr(err)
	}
	if len(stmt.Columns) != 1 {
		return errExpr(fmt.Errorf("%w: subquery expression must project exactly one column", ast.ErrTypeMismatch))
	}
	return Expr{node: &ast.SubqueryExpr{Stmt: stmt}}
}

// toOperand coerces combinator arguments: an Expr passes through, a Builder
// becomes a subquery, anything else is a literal.
func toOperand(v any) Expr {
	switch x := v.(type) {
	case Expr:
		return x
	case Builder:
		return Sub(x)
	case *Builder:
		return Sub(*x)
	default:
		return Val(v)
	}
}

// firstErr merges chain errors, keeping the earliest.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e Expr) compare(op string, v any) Expr {
	rhs := toOperand(v)
	if err := firstErr(e.err, rhs.err); err != nil {
		return errExpr(err)
	}
	if err := ast.CheckComparable(op, e.Kind(), rhs.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: op, Right: rhs.node, ResultKind: ast.KindBool}}
}

func (e Expr) ordered(op string, v any) Expr {
	rhs := toOperand(v)
	if err := firstErr(e.err, rhs.err); err != nil {
		return errExpr(err)
	}
	if err := ast.CheckOrdered(op, e.Kind(), rhs.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: op, Right: rhs.node, ResultKind: ast.KindBool}}
}

// Eq compares for equality with a literal, expression, or subquery.
func (e Expr) Eq(v any) Expr { return e.compare(ast.OpEqual, v) }

// Ne compares for inequality.
func (e Expr) Ne(v any) Expr { return e.compare(ast.OpNotEqual, v) }

// Gt is strictly-greater; Goe is greater-or-equal; Lt and Loe mirror them.
func (e Expr) Gt(v any) Expr  { return e.ordered(ast.OpGreaterThan, v) }
func (e Expr) Goe(v any) Expr { return e.ordered(ast.OpGreaterThanOrEqual, v) }
func (e Expr) Lt(v any) Expr  { return e.ordered(ast.OpLessThan, v) }
func (e Expr) Loe(v any) Expr { return e.ordered(ast.OpLessThanOrEqual, v) }

// Between matches values in the inclusive [lo, hi] range.
func (e Expr) Between(lo, hi any) Expr {
	l, h := toOperand(lo), toOperand(hi)
	if err := firstErr(e.err, l.err, h.err); err != nil {
		return errExpr(err)
	}
	if err := ast.CheckOrdered(ast.OpBetween, e.Kind(), l.Kind()); err != nil {
		return errExpr(err)
	}
	if err := ast.CheckOrdered(ast.OpBetween, e.Kind(), h.Kind()); err != nil {
		return errExpr(err)
	}
	rng := &ast.Range{Lo: l.node, Hi: h.node}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: ast.OpBetween, Right: rng, ResultKind: ast.KindBool}}
}

// In matches membership in a literal list or, when given a single Builder,
// in a one-column subquery.
func (e Expr) In(vs ...any) Expr {
	if e.err != nil {
		return e
	}
	if len(vs) == 1 {
		switch vs[0].(type) {
		case Builder, *Builder:
			sub := toOperand(vs[0])
			if sub.err != nil {
				return errExpr(sub.err)
			}
			if err := ast.CheckComparable(ast.OpIn, e.Kind(), sub.Kind()); err != nil {
				return errExpr(err)
			}
			return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: ast.OpIn, Right: sub.node, ResultKind: ast.KindBool}}
		}
	}
	if len(vs) == 0 {
		return errExpr(fmt.Errorf("%w: in requires at least one value", ast.ErrTypeMismatch))
	}
	list := &ast.List{ElemKind: e.Kind()}
	for _, v := range vs {
		val, ok := ast.NewValue(v)
		if !ok {
			return errExpr(fmt.Errorf("%w: unsupported literal type %T", ast.ErrTypeMismatch, v))
		}
		if err := ast.CheckComparable(ast.OpIn, e.Kind(), val.ValueKind); err != nil {
			return errExpr(err)
		}
		list.Values = append(list.Values, val)
	}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: ast.OpIn, Right: list, ResultKind: ast.KindBool}}
}

// Like matches a SQL pattern against a string expression.
func (e Expr) Like(pattern string) Expr {
	if e.err != nil {
		return e
	}
	if err := ast.CheckString(ast.OpLike, e.Kind()); err != nil {
		return errExpr(err)
	}
	val, _ := ast.NewValue(pattern)
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: ast.OpLike, Right: val, ResultKind: ast.KindBool}}
}

// IsNull and IsNotNull test for SQL NULL.
func (e Expr) IsNull() Expr {
	if e.err != nil {
		return e
	}
	return Expr{node: &ast.UnaryExpr{Operator: ast.OpIsNull, Operand: e.node, ResultKind: ast.KindBool}}
}

func (e Expr) IsNotNull() Expr {
	if e.err != nil {
		return e
	}
	return Expr{node: &ast.UnaryExpr{Operator: ast.OpIsNotNull, Operand: e.node, ResultKind: ast.KindBool}}
}

// logical builds an AND/OR tree. Where-chaining uses the same helper, which
// is what makes where(P).where(Q) compile identically to where(P.and(Q)).
func logical(op string, left, right ast.Node) ast.Node {
	return &ast.BinaryExpr{
		Left:       groupLogical(left),
		Operator:   op,
		Right:      groupLogical(right),
		ResultKind: ast.KindBool,
	}
}

// groupLogical parenthesizes nested logical operators so precedence is
// always explicit in the compiled SQL.
func groupLogical(n ast.Node) ast.Node {
	if b, ok := n.(*ast.BinaryExpr); ok && (b.Operator == ast.OpAnd || b.Operator == ast.OpOr) {
		return &ast.GroupedExpr{Expr: n}
	}
	return n
}

// And conjoins two predicates.
func (e Expr) And(other Expr) Expr {
	if err := firstErr(e.err, other.err); err != nil {
		return errExpr(err)
	}
	if err := firstErr(
		ast.CheckBool(ast.OpAnd, e.Kind()),
		ast.CheckBool(ast.OpAnd, other.Kind()),
	); err != nil {
		return errExpr(err)
	}
	return Expr{node: logical(ast.OpAnd, e.node, other.node)}
}

// Or disjoins two predicates.
func (e Expr) Or(other Expr) Expr {
	if err := firstErr(e.err, other.err); err != nil {
		return errExpr(err)
	}
	if err := firstErr(
		ast.CheckBool(ast.OpOr, e.Kind()),
		ast.CheckBool(ast.OpOr, other.Kind()),
	); err != nil {
		return errExpr(err)
	}
	return Expr{node: logical(ast.OpOr, e.node, other.node)}
}

// Not negates a predicate.
func (e Expr) Not() Expr {
	if e.err != nil {
		return e
	}
	if err := ast.CheckBool(ast.OpNot, e.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.UnaryExpr{
		Operator:   ast.OpNot,
		Operand:    groupLogical(e.node),
		Prefix:     true,
		ResultKind: ast.KindBool,
	}}
}

func (e Expr) arithmetic(op string, v any) Expr {
	rhs := toOperand(v)
	if err := firstErr(e.err, rhs.err); err != nil {
		return errExpr(err)
	}
	if err := firstErr(
		ast.CheckNumeric(op, e.Kind()),
		ast.CheckNumeric(op, rhs.Kind()),
	); err != nil {
		return errExpr(err)
	}
	kind := ast.KindInt
	if e.Kind() == ast.KindFloat || rhs.Kind() == ast.KindFloat {
		kind = ast.KindFloat
	}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: op, Right: rhs.node, ResultKind: kind}}
}

func (e Expr) Add(v any) Expr      { return e.arithmetic(ast.OpAdd, v) }
func (e Expr) Subtract(v any) Expr { return e.arithmetic(ast.OpSubtract, v) }
func (e Expr) Multiply(v any) Expr { return e.arithmetic(ast.OpMultiply, v) }
func (e Expr) Divide(v any) Expr   { return e.arithmetic(ast.OpDivide, v) }

// Concat joins string expressions. Use AsString to concatenate non-string
// fields.
func (e Expr) Concat(v any) Expr {
	rhs := toOperand(v)
	if err := firstErr(e.err, rhs.err); err != nil {
		return errExpr(err)
	}
	if err := firstErr(
		ast.CheckString(ast.OpConcat, e.Kind()),
		ast.CheckString(ast.OpConcat, rhs.Kind()),
	); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.BinaryExpr{Left: e.node, Operator: ast.OpConcat, Right: rhs.node, ResultKind: ast.KindString}}
}

// AsString casts the expression to its string form.
func (e Expr) AsString() Expr {
	if e.err != nil {
		return e
	}
	return Expr{node: &ast.CastExpr{Expr: e.node, TargetKind: ast.KindString}}
}

// As names the expression in the projection.
func (e Expr) As(alias string) Expr {
	if e.err != nil {
		return e
	}
	if f, ok := e.node.(*ast.Field); ok {
		named := *f
		named.Alias = alias
		return Expr{node: &named}
	}
	return e
}

// Aggregates. Count accepts any expression; the numeric aggregates reject
// non-numeric operands, Max/Min any unordered ones.

func Count(e Expr) Expr {
	if e.err != nil {
		return e
	}
	return Expr{node: &ast.FuncExpr{Name: ast.FnCount, Args: []ast.Node{e.node}, Aggregate: true, ResultKind: ast.KindInt}}
}

// CountAll is COUNT(*).
func CountAll() Expr {
	return Expr{node: &ast.FuncExpr{Name: ast.FnCount, Args: []ast.Node{ast.Star()}, Aggregate: true, ResultKind: ast.KindInt}}
}

func Sum(e Expr) Expr {
	if e.err != nil {
		return e
	}
	if err := ast.CheckNumeric(ast.FnSum, e.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.FuncExpr{Name: ast.FnSum, Args: []ast.Node{e.node}, Aggregate: true, ResultKind: e.Kind()}}
}

func Avg(e Expr) Expr {
	if e.err != nil {
		return e
	}
	if err := ast.CheckNumeric(ast.FnAvg, e.Kind()); err != nil {
		return errExpr(err)
	}
	return Expr{node: &ast.FuncExpr{Name: ast.FnAvg, Args: []ast.Node{e.node}, Aggregate: true, ResultKind: ast.KindFloat}}
}

func Max(e Expr) Expr { return orderedAggregate(ast.FnMax, e) }
func Min(e Expr) Expr { return orderedAggregate(ast.FnMin, e) }

func orderedAggregate(name string, e Expr) Expr {
	if e.err != nil {
		return e
	}
	if !e.Kind().Ordered() {
		return errExpr(&ast.TypeMismatchError{Op: name, Left: e.Kind(), Right: ast.KindFloat})
	}
	return Expr{node: &ast.FuncExpr{Name: name, Args: []ast.Node{e.node}, Aggregate: true, ResultKind: e.Kind()}}
}
