package ast

import "github.com/quelldb/quell/utils"

// SubqueryExpr embeds a nested select as an expression. Its kind is the kind
// of the subquery's single projected column. Subqueries are legal in
// projections, WHERE comparisons, and IN lists; they are not a FROM source.
type SubqueryExpr struct {
	Stmt *SelectStmt
}

func (s *SubqueryExpr) Type() NodeType         { return NodeSubqueryExpr }
func (s *SubqueryExpr) Accept(v Visitor) error { return v.VisitSubquery(s) }

func (s *SubqueryExpr) Kind() Kind {
	if s.Stmt == nil || len(s.Stmt.Columns) != 1 {
		return KindNone
	}
	return s.Stmt.Columns[0].Kind()
}

func (s *SubqueryExpr) Fingerprint() uint64 {
	if s.Stmt == nil {
		return utils.FingerprintString("subquery:nil")
	}
	return utils.Mix64(utils.FingerprintString("subquery"), s.Stmt.Fingerprint())
}
