package ast

import (
	"hash/fnv"

	"github.com/quelldb/quell/utils"
)

// SelectStmt is the immutable query plan. Builders never mutate a statement
// another builder can still see: every builder step clones the statement and
// its clause slices (nodes themselves are immutable and shared freely).
type SelectStmt struct {
	Columns []Node
	From    *Table
	Joins   []*JoinClause
	Where   *WhereClause
	GroupBy *GroupByClause
	Having  *WhereClause
	OrderBy []*OrderByClause
	Limit   *LimitClause
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Kind() Kind             { return KindNone }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }

// Clone copies the statement and its clause slices so the copy can be
// extended without the original observing the change.
func (s *SelectStmt) Clone() *SelectStmt {
	c := *s
	if s.Columns != nil {
		c.Columns = make([]Node, len(s.Columns))
		copy(c.Columns, s.Columns)
	}
	if s.Joins != nil {
		c.Joins = make([]*JoinClause, len(s.Joins))
		copy(c.Joins, s.Joins)
	}
	if s.OrderBy != nil {
		c.OrderBy = make([]*OrderByClause, len(s.OrderBy))
		copy(c.OrderBy, s.OrderBy)
	}
	if s.Where != nil {
		w := *s.Where
		c.Where = &w
	}
	if s.Having != nil {
		h := *s.Having
		c.Having = &h
	}
	if s.GroupBy != nil {
		g := GroupByClause{Exprs: make([]Node, len(s.GroupBy.Exprs))}
		copy(g.Exprs, s.GroupBy.Exprs)
		c.GroupBy = &g
	}
	if s.Limit != nil {
		l := *s.Limit
		c.Limit = &l
	}
	return &c
}

func (s *SelectStmt) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("select:"))
	for _, col := range s.Columns {
		_, _ = h.Write(utils.U64ToBytes(col.Fingerprint()))
	}
	if s.From != nil {
		_, _ = h.Write(utils.U64ToBytes(s.From.Fingerprint()))
	}
	for _, j := range s.Joins {
		_, _ = h.Write(utils.U64ToBytes(j.Fingerprint()))
	}
	if s.Where != nil {
		_, _ = h.Write(utils.U64ToBytes(s.Where.Fingerprint()))
	}
	if s.GroupBy != nil {
		_, _ = h.Write(utils.U64ToBytes(s.GroupBy.Fingerprint()))
	}
	if s.Having != nil {
		_, _ = h.Write([]byte("having:"))
		_, _ = h.Write(utils.U64ToBytes(s.Having.Fingerprint()))
	}
	for _, o := range s.OrderBy {
		_, _ = h.Write(utils.U64ToBytes(o.Fingerprint()))
	}
	if s.Limit != nil {
		_, _ = h.Write(utils.U64ToBytes(s.Limit.Fingerprint()))
	}
	return h.Sum64()
}
