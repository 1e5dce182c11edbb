package ast

import (
	"strconv"

	"github.com/quelldb/quell/utils"
)

type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
)

// JoinClause attaches one source to the statement. Relation is the declared
// relation name when the join follows a foreign key (a relationship join) and
// empty for theta joins; Derived marks an ON predicate that was auto-derived
// from the relation rather than supplied by the caller. Fetch requests eager
// materialization of the related entity.
type JoinClause struct {
	JoinType JoinType
	Table    *Table
	On       Node
	Relation string
	Derived  bool
	Fetch    bool
}

func (j *JoinClause) Type() NodeType         { return NodeJoin }
func (j *JoinClause) Kind() Kind             { return KindNone }
func (j *JoinClause) Accept(v Visitor) error { return v.VisitJoin(j) }

func (j *JoinClause) Fingerprint() uint64 {
	fp := utils.FingerprintString("join:" + strconv.Itoa(int(j.JoinType)) + ":" + j.Relation)
	if j.Table != nil {
		fp = utils.Mix64(fp, j.Table.Fingerprint())
	}
	if j.On != nil {
		fp = utils.Mix64(fp, j.On.Fingerprint())
	}
	if j.Fetch {
		fp = utils.Mix64(fp, utils.FingerprintString("fetch"))
	}
	return fp
}
