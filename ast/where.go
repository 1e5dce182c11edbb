package ast

// WhereClause holds the statement's filter as a single boolean-valued tree.
// Repeated where calls on a builder AND into this tree, so chained filters
// and an explicit AND combinator produce the same clause.
type WhereClause struct {
	Condition Node
}

func (w *WhereClause) Type() NodeType         { return NodeWhere }
func (w *WhereClause) Kind() Kind             { return KindNone }
func (w *WhereClause) Accept(v Visitor) error { return v.VisitWhere(w) }
func (w *WhereClause) Fingerprint() uint64 {
	if w.Condition == nil {
		return 0
	}
	return w.Condition.Fingerprint()
}
