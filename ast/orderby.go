package ast

import (
	"hash/fnv"
	"strconv"

	"github.com/quelldb/quell/utils"
)

// OrderByClause is one sort key. Nulls placement is only emitted when the
// caller asked for it; the unspecified placement of NULLs is store-defined.
type OrderByClause struct {
	Expr  Node
	Desc  bool
	Nulls NullOrdering
}

func (o *OrderByClause) Type() NodeType         { return NodeOrderBy }
func (o *OrderByClause) Kind() Kind             { return KindNone }
func (o *OrderByClause) Accept(v Visitor) error { return v.VisitOrderBy(o) }
func (o *OrderByClause) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("order:" + strconv.Itoa(int(o.Nulls))))
	_, _ = h.Write(utils.U64ToBytes(o.Expr.Fingerprint()))
	if o.Desc {
		_, _ = h.Write([]byte("desc"))
	}
	return h.Sum64()
}
