package ast

// Visitor renders or inspects a plan. Compilation is a visitor over the
// statement tree.
type Visitor interface {
	VisitSelect(*SelectStmt) error

	VisitField(*Field) error
	VisitTable(*Table) error
	VisitValue(*Value) error
	VisitList(*List) error
	VisitRange(*Range) error
	VisitFunc(*FuncExpr) error
	VisitCast(*CastExpr) error
	VisitCase(*CaseExpr) error
	VisitGroupedExpr(*GroupedExpr) error
	VisitBinaryExpr(*BinaryExpr) error
	VisitUnaryExpr(*UnaryExpr) error
	VisitSubquery(*SubqueryExpr) error

	VisitWhere(*WhereClause) error
	VisitJoin(*JoinClause) error
	VisitGroupBy(*GroupByClause) error
	VisitOrderBy(*OrderByClause) error
	VisitLimit(*LimitClause) error
}
