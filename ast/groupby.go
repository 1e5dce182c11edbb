package ast

import (
	"hash/fnv"

	"github.com/quelldb/quell/utils"
)

type GroupByClause struct {
	Exprs []Node
}

func (g *GroupByClause) Type() NodeType         { return NodeGroupBy }
func (g *GroupByClause) Kind() Kind             { return KindNone }
func (g *GroupByClause) Accept(v Visitor) error { return v.VisitGroupBy(g) }
func (g *GroupByClause) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("groupby:"))
	for _, expr := range g.Exprs {
		_, _ = h.Write(utils.U64ToBytes(expr.Fingerprint()))
	}
	return h.Sum64()
}
