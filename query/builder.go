package query

import (
	"errors"

	"github.com/quelldb/quell/ast"
	"github.com/quelldb/quell/schema"
)

// Builder assembles an immutable query plan step by step. Every method
// returns a new Builder; the receiver is never mutated, so a partially built
// query can branch into several variants safely.
//
// Construction errors accumulate instead of panicking and surface together
// from Build.
type Builder struct {
	stmt *ast.SelectStmt
	from *schema.Descriptor
	errs []error
}

// SelectFrom starts a whole-entity query: the projection is every mapped
// field of d, and entity terminals (All, One, First) accept the result.
func SelectFrom(d *schema.Descriptor) Builder {
	return Builder{stmt: &ast.SelectStmt{}}.From(d)
}

// Select starts a tuple query with an explicit projection.
func Select(exprs ...Expr) Builder {
	b := Builder{stmt: &ast.SelectStmt{}}
	cols := make([]ast.Node, 0, len(exprs))
	for _, e := range exprs {
		if e.err != nil {
			return b.addErr(e.err)
		}
		cols = append(cols, e.node)
	}
	b.stmt.Columns = cols
	return b
}

func (b Builder) clone() Builder {
	c := b
	c.stmt = b.stmt.Clone()
	if len(b.errs) > 0 {
		c.errs = make([]error, len(b.errs))
		copy(c.errs, b.errs)
	}
	return c
}

func (b Builder) addErr(err error) Builder {
	c := b.clone()
	c.errs = append(c.errs, err)
	return c
}

// Root is the entity the query selects from.
func (b Builder) Root() *schema.Descriptor { return b.from }

// EntityProjection reports whether the query projects a whole entity rather
// than an explicit tuple.
func (b Builder) EntityProjection() bool { return len(b.stmt.Columns) == 0 }

// From names the root entity.
func (b Builder) From(d *schema.Descriptor) Builder {
	c := b.clone()
	c.from = d
	c.stmt.From = &ast.Table{Name: d.Table, Alias: d.Alias}
	return c
}

// FromSelect rejects a subquery in the FROM position. Compiled plans do not
// support derived tables; rewrite the query as a join or run it in two steps.
func (b Builder) FromSelect(Builder) Builder {
	return b.addErr(ErrUnsupportedSubqueryPosition)
}

// Where narrows the result set. Multiple predicates, and repeated Where
// calls, conjoin with AND; where(p).Where(q) builds the same plan as
// Where(p.And(q)).
func (b Builder) Where(preds ...Expr) Builder {
	c := b.clone()
	cond, err := foldAnd(preds)
	if err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	if cond == nil {
		return c
	}
	if c.stmt.Where != nil && c.stmt.Where.Condition != nil {
		cond = logical(ast.OpAnd, c.stmt.Where.Condition, cond)
	}
	c.stmt.Where = &ast.WhereClause{Condition: cond}
	return c
}

// Having filters grouped rows; it follows the same conjunction rules as
// Where.
func (b Builder) Having(preds ...Expr) Builder {
	c := b.clone()
	cond, err := foldAnd(preds)
	if err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	if cond == nil {
		return c
	}
	if c.stmt.Having != nil && c.stmt.Having.Condition != nil {
		cond = logical(ast.OpAnd, c.stmt.Having.Condition, cond)
	}
	c.stmt.Having = &ast.WhereClause{Condition: cond}
	return c
}

func foldAnd(preds []Expr) (ast.Node, error) {
	var cond ast.Node
	for _, p := range preds {
		if p.err != nil {
			return nil, p.err
		}
		if err := ast.CheckBool(ast.OpAnd, p.Kind()); err != nil {
			return nil, err
		}
		if cond == nil {
			cond = p.node
		} else {
			cond = logical(ast.OpAnd, cond, p.node)
		}
	}
	return cond, nil
}

// Join follows a declared relation of the root entity with an inner join.
// The ON predicate is derived from the foreign key declaration.
func (b Builder) Join(relation string) Builder {
	return b.relationJoin(ast.JoinInner, relation)
}

// LeftJoin follows a declared relation with a left outer join, preserving
// root rows without a match.
func (b Builder) LeftJoin(relation string) Builder {
	return b.relationJoin(ast.JoinLeft, relation)
}

func (b Builder) relationJoin(jt ast.JoinType, relation string) Builder {
	if b.from == nil {
		return b.addErr(ErrIncompleteQuery)
	}
	rel, ok := b.from.Relation(relation)
	if !ok {
		return b.addErr(&MissingJoinPredicateError{Table: relation})
	}
	fk, _ := b.from.Col(rel.FKColumn)
	ref, _ := rel.Target.Col(rel.RefColumn)
	c := b.clone()
	c.stmt.Joins = append(c.stmt.Joins, &ast.JoinClause{
		JoinType: jt,
		Table:    &ast.Table{Name: rel.Target.Table, Alias: rel.Target.Alias},
		On:       &ast.BinaryExpr{Left: fk, Operator: ast.OpEqual, Right: ref, ResultKind: ast.KindBool},
		Relation: relation,
		Derived:  true,
	})
	return c
}

// JoinEntity joins an unrelated entity (a theta join). The ON predicate is
// not derivable and must follow via On; Build rejects the join without one.
func (b Builder) JoinEntity(d *schema.Descriptor) Builder {
	return b.entityJoin(ast.JoinInner, d)
}

// LeftJoinEntity is JoinEntity with a left outer join.
func (b Builder) LeftJoinEntity(d *schema.Descriptor) Builder {
	return b.entityJoin(ast.JoinLeft, d)
}

func (b Builder) entityJoin(jt ast.JoinType, d *schema.Descriptor) Builder {
	c := b.clone()
	c.stmt.Joins = append(c.stmt.Joins, &ast.JoinClause{
		JoinType: jt,
		Table:    &ast.Table{Name: d.Table, Alias: d.Alias},
	})
	return c
}

// On attaches a predicate to the most recent join. On a relationship join it
// conjoins with the derived foreign-key equality; on a theta join it becomes
// the join condition.
func (b Builder) On(pred Expr) Builder {
	if pred.err != nil {
		return b.addErr(pred.err)
	}
	if err := ast.CheckBool(ast.OpAnd, pred.Kind()); err != nil {
		return b.addErr(err)
	}
	if len(b.stmt.Joins) == 0 {
		return b.addErr(ErrMissingJoinPredicate)
	}
	c := b.clone()
	last := *c.stmt.Joins[len(c.stmt.Joins)-1]
	if last.On != nil {
		last.On = logical(ast.OpAnd, last.On, pred.node)
	} else {
		last.On = pred.node
	}
	c.stmt.Joins[len(c.stmt.Joins)-1] = &last
	return c
}

// FetchJoin marks the most recent join for eager materialization: the
// related entity is resolved together with the root rows instead of lazily
// on first access. Only relationship joins can fetch.
func (b Builder) FetchJoin() Builder {
	if len(b.stmt.Joins) == 0 {
		return b.addErr(ErrInvalidFetchJoin)
	}
	last := b.stmt.Joins[len(b.stmt.Joins)-1]
	if last.Relation == "" {
		return b.addErr(ErrInvalidFetchJoin)
	}
	c := b.clone()
	fetched := *last
	fetched.Fetch = true
	c.stmt.Joins[len(c.stmt.Joins)-1] = &fetched
	return c
}

// GroupBy declares the grouping keys.
func (b Builder) GroupBy(exprs ...Expr) Builder {
	c := b.clone()
	g := &ast.GroupByClause{}
	if c.stmt.GroupBy != nil {
		g.Exprs = append(g.Exprs, c.stmt.GroupBy.Exprs...)
	}
	for _, e := range exprs {
		if e.err != nil {
			c.errs = append(c.errs, e.err)
			return c
		}
		g.Exprs = append(g.Exprs, e.node)
	}
	c.stmt.GroupBy = g
	return c
}

// OrderBy declares the sort keys in priority order, replacing any earlier
// ordering.
func (b Builder) OrderBy(specs ...OrderSpec) Builder {
	c := b.clone()
	c.stmt.OrderBy = c.stmt.OrderBy[:0]
	for _, s := range specs {
		if s.err != nil {
			c.errs = append(c.errs, s.err)
			return c
		}
		c.stmt.OrderBy = append(c.stmt.OrderBy, s.clause())
	}
	return c
}

// Limit caps the number of returned rows.
func (b Builder) Limit(n int) Builder {
	c := b.clone()
	if c.stmt.Limit == nil {
		c.stmt.Limit = &ast.LimitClause{}
	}
	c.stmt.Limit.Count = &n
	return c
}

// Offset skips the first n rows. An offset without a limit is valid; the
// dialect supplies its unbounded-limit form.
func (b Builder) Offset(n int) Builder {
	c := b.clone()
	if c.stmt.Limit == nil {
		c.stmt.Limit = &ast.LimitClause{}
	}
	c.stmt.Limit.Offset = &n
	return c
}

// Build finalizes the plan. All accumulated construction errors surface
// here; a returned statement is complete and safe to compile.
func (b Builder) Build() (*ast.SelectStmt, error) {
	errs := b.errs
	if b.stmt.From == nil {
		errs = append(errs, ErrIncompleteQuery)
	}
	for _, j := range b.stmt.Joins {
		if j.On == nil {
			errs = append(errs, &MissingJoinPredicateError{Table: j.Table.Name})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	stmt := b.stmt.Clone()
	if len(stmt.Columns) == 0 && b.from != nil {
		stmt.Columns = b.from.Cols()
	}
	return stmt, nil
}
