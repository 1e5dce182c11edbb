package ast

import (
	"hash/fnv"
	"strconv"
)

// LimitClause carries paging. Either part may be absent. Paging without an
// ORDER BY yields store-defined row order; that is a caller responsibility,
// not a compiler concern.
type LimitClause struct {
	Count  *int
	Offset *int
}

func (l *LimitClause) Type() NodeType         { return NodeLimit }
func (l *LimitClause) Kind() Kind             { return KindNone }
func (l *LimitClause) Accept(v Visitor) error { return v.VisitLimit(l) }
func (l *LimitClause) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("limit:"))
	if l.Count != nil {
		_, _ = h.Write([]byte(strconv.Itoa(*l.Count)))
	}
	_, _ = h.Write([]byte(":"))
	if l.Offset != nil {
		_, _ = h.Write([]byte(strconv.Itoa(*l.Offset)))
	}
	return h.Sum64()
}
