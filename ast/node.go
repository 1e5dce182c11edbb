// Package ast defines the typed expression tree that query plans are made of.
// Nodes are immutable once constructed and safe to share between sessions;
// builders clone the enclosing statement instead of mutating nodes in place.
package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeField
	NodeTable
	NodeValue
	NodeList
	NodeRange
	NodeFunc
	NodeCast
	NodeCase
	NodeGroupedExpr
	NodeBinaryExpr
	NodeUnaryExpr
	NodeSubqueryExpr
	NodeWhere
	NodeJoin
	NodeGroupBy
	NodeOrderBy
	NodeLimit
)

// Kind is the value kind an expression evaluates to. Clause nodes that do not
// produce a value report KindNone.
type Kind int

const (
	KindNone Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	default:
		return "none"
	}
}

// Numeric reports whether the kind participates in arithmetic and numeric
// aggregates.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Ordered reports whether values of this kind can be compared with <, <=, >,
// >= and BETWEEN.
func (k Kind) Ordered() bool {
	return k.Numeric() || k == KindString || k == KindTime
}

// ComparableWith reports whether two kinds may appear on the two sides of a
// comparison. Numeric kinds compare freely with each other; everything else
// requires an exact match. KindNull compares with anything (IS NULL handling
// is separate, this covers literal NULL operands).
func (k Kind) ComparableWith(other Kind) bool {
	if k == KindNull || other == KindNull {
		return true
	}
	if k.Numeric() && other.Numeric() {
		return true
	}
	return k == other
}

// NullOrdering controls where NULL values sort. The zero value leaves the
// placement to the backing store, which callers must not rely on.
type NullOrdering int

const (
	NullsUnspecified NullOrdering = iota
	NullsFirst
	NullsLast
)

// Node is a vertex of the expression tree. Fingerprint is a structural hash
// covering both shape and bound literals; two plans with equal fingerprints
// compile to identical SQL and argument lists.
type Node interface {
	Type() NodeType
	Kind() Kind
	Accept(v Visitor) error
	Fingerprint() uint64
}
