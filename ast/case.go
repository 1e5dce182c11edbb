package ast

import (
	"hash/fnv"

	"github.com/quelldb/quell/utils"
)

// CaseWhen is one WHEN <cond> THEN <result> branch.
type CaseWhen struct {
	Cond   Node
	Result Node
}

// CaseExpr is a searched CASE expression. Branches compile in declaration
// order. Else may be nil during construction; the compiler rejects a plan
// whose CASE lacks a fallback.
type CaseExpr struct {
	Whens      []CaseWhen
	Else       Node
	ResultKind Kind
}

func (c *CaseExpr) Type() NodeType         { return NodeCase }
func (c *CaseExpr) Kind() Kind             { return c.ResultKind }
func (c *CaseExpr) Accept(v Visitor) error { return v.VisitCase(c) }
func (c *CaseExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("case:"))
	for _, w := range c.Whens {
		_, _ = h.Write(utils.U64ToBytes(w.Cond.Fingerprint()))
		_, _ = h.Write(utils.U64ToBytes(w.Result.Fingerprint()))
	}
	if c.Else != nil {
		_, _ = h.Write(utils.U64ToBytes(c.Else.Fingerprint()))
	}
	return h.Sum64()
}
