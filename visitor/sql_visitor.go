// Package visitor compiles an immutable query plan into a parameterized SQL
// string plus an ordered argument list. Compilation is deterministic: the
// same plan always yields byte-identical SQL and the same arguments, which
// is what makes the fingerprint-keyed plan cache sound.
package visitor

import (
	"strconv"
	"strings"

	"github.com/quelldb/quell/ast"
	"github.com/quelldb/quell/cache"
	"github.com/quelldb/quell/dialect"
)

// SQLVisitor renders one statement. It is cheap to construct and not safe
// for concurrent use; sessions create one per compilation.
type SQLVisitor struct {
	sb      strings.Builder
	args    []any
	dialect dialect.Dialect
	cache   cache.PlanCache
}

// NewSQLVisitor returns a visitor for the given dialect. cache may be nil to
// disable plan caching.
func NewSQLVisitor(d dialect.Dialect, c cache.PlanCache) *SQLVisitor {
	return &SQLVisitor{dialect: d, cache: c, args: make([]any, 0, 8)}
}

// Build validates and compiles the plan. Validation failures (grouping
// rules, incomplete case expressions) surface here, before anything reaches
// the backing store.
func (v *SQLVisitor) Build(stmt *ast.SelectStmt) (string, []any, error) {
	fp := stmt.Fingerprint()
	if v.cache != nil {
		if hit, ok := v.cache.Get(fp); ok {
			args := make([]any, len(hit.Args))
			copy(args, hit.Args)
			return hit.SQL, args, nil
		}
	}

	if err := validateSelect(stmt); err != nil {
		return "", nil, err
	}

	v.sb.Reset()
	v.args = v.args[:0]
	if err := stmt.Accept(v); err != nil {
		return "", nil, err
	}

	sql := v.sb.String()
	args := make([]any, len(v.args))
	copy(args, v.args)

	if v.cache != nil {
		cached := make([]any, len(args))
		copy(cached, args)
		v.cache.Set(fp, &cache.CompiledQuery{SQL: sql, Args: cached})
	}
	return sql, args, nil
}

func (v *SQLVisitor) arg(a any) {
	v.args = append(v.args, a)
	v.sb.WriteString(v.dialect.Placeholder(len(v.args)))
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	v.sb.WriteString("SELECT ")
	for i, col := range s.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
	}

	if s.From != nil {
		v.sb.WriteString(" FROM ")
		if err := s.From.Accept(v); err != nil {
			return err
		}
	}

	for _, join := range s.Joins {
		if err := join.Accept(v); err != nil {
			return err
		}
	}

	if s.Where != nil && s.Where.Condition != nil {
		v.sb.WriteString(" WHERE ")
		if err := s.Where.Condition.Accept(v); err != nil {
			return err
		}
	}

	if s.GroupBy != nil {
		if err := s.GroupBy.Accept(v); err != nil {
			return err
		}
	}

	if s.Having != nil && s.Having.Condition != nil {
		v.sb.WriteString(" HAVING ")
		if err := s.Having.Condition.Accept(v); err != nil {
			return err
		}
	}

	for i, o := range s.OrderBy {
		if i == 0 {
			v.sb.WriteString(" ORDER BY ")
		} else {
			v.sb.WriteString(", ")
		}
		if err := o.Accept(v); err != nil {
			return err
		}
	}

	if s.Limit != nil {
		if err := s.Limit.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) VisitField(f *ast.Field) error {
	if f.Table != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(f.Table))
		v.sb.WriteByte('.')
	}
	if f.Name == "*" {
		v.sb.WriteByte('*')
		return nil
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(f.Name))
	if f.Alias != "" && f.Alias != f.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(f.Alias))
	}
	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Name))
	if t.Alias != "" && t.Alias != t.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	}
	return nil
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	v.arg(val.Val)
	return nil
}

func (v *SQLVisitor) VisitList(l *ast.List) error {
	v.sb.WriteByte('(')
	for i, val := range l.Values {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.arg(val.Val)
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitRange(r *ast.Range) error {
	if err := r.Lo.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" AND ")
	return r.Hi.Accept(v)
}

func (v *SQLVisitor) VisitFunc(f *ast.FuncExpr) error {
	v.sb.WriteString(f.Name)
	v.sb.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := a.Accept(v); err != nil {
			return err
		}
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitCast(c *ast.CastExpr) error {
	v.sb.WriteString("CAST(")
	if err := c.Expr.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" AS ")
	v.sb.WriteString(v.dialect.CastType(c.TargetKind))
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitCase(c *ast.CaseExpr) error {
	if c.Else == nil {
		return ErrIncompleteCaseExpression
	}
	v.sb.WriteString("CASE")
	for _, w := range c.Whens {
		v.sb.WriteString(" WHEN ")
		if err := w.Cond.Accept(v); err != nil {
			return err
		}
		v.sb.WriteString(" THEN ")
		if err := w.Result.Accept(v); err != nil {
			return err
		}
	}
	v.sb.WriteString(" ELSE ")
	if err := c.Else.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" END")
	return nil
}

func (v *SQLVisitor) VisitGroupedExpr(g *ast.GroupedExpr) error {
	v.sb.WriteByte('(')
	err := g.Expr.Accept(v)
	v.sb.WriteByte(')')
	return err
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	v.sb.WriteByte(' ')
	return expr.Right.Accept(v)
}

func (v *SQLVisitor) VisitUnaryExpr(expr *ast.UnaryExpr) error {
	if expr.Prefix {
		v.sb.WriteString(expr.Operator)
		v.sb.WriteByte(' ')
		return expr.Operand.Accept(v)
	}
	if err := expr.Operand.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	return nil
}

func (v *SQLVisitor) VisitSubquery(s *ast.SubqueryExpr) error {
	if s.Stmt == nil {
		return ErrUnsupportedSubqueryAsFrom
	}
	if err := validateSelect(s.Stmt); err != nil {
		return err
	}
	v.sb.WriteByte('(')
	if err := s.Stmt.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitWhere(w *ast.WhereClause) error {
	if w == nil || w.Condition == nil {
		return nil
	}
	return w.Condition.Accept(v)
}

func (v *SQLVisitor) VisitJoin(j *ast.JoinClause) error {
	if j.JoinType == ast.JoinLeft {
		v.sb.WriteString(" LEFT JOIN ")
	} else {
		v.sb.WriteString(" JOIN ")
	}
	if err := j.Table.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" ON ")
	return j.On.Accept(v)
}

func (v *SQLVisitor) VisitGroupBy(g *ast.GroupByClause) error {
	if len(g.Exprs) == 0 {
		return nil
	}
	v.sb.WriteString(" GROUP BY ")
	for i, expr := range g.Exprs {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := expr.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) VisitOrderBy(o *ast.OrderByClause) error {
	if err := o.Expr.Accept(v); err != nil {
		return err
	}
	if o.Desc {
		v.sb.WriteString(" DESC")
	} else {
		v.sb.WriteString(" ASC")
	}
	switch o.Nulls {
	case ast.NullsFirst:
		v.sb.WriteString(" NULLS FIRST")
	case ast.NullsLast:
		v.sb.WriteString(" NULLS LAST")
	}
	return nil
}

func (v *SQLVisitor) VisitLimit(l *ast.LimitClause) error {
	if l.Count != nil {
		v.sb.WriteString(" LIMIT ")
		v.sb.WriteString(strconv.Itoa(*l.Count))
	} else if l.Offset != nil {
		v.sb.WriteString(" LIMIT ")
		v.sb.WriteString(v.dialect.LimitAll())
	}
	if l.Offset != nil {
		v.sb.WriteString(" OFFSET ")
		v.sb.WriteString(strconv.Itoa(*l.Offset))
	}
	return nil
}
