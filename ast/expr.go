package ast

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/quelldb/quell/utils"
)

// Field is a typed reference to a column of a source entity. Table carries
// the alias the entity was brought into the query under.
type Field struct {
	Table     string
	Name      string
	Alias     string
	ValueKind Kind
	Nullable  bool
}

func (f *Field) Type() NodeType         { return NodeField }
func (f *Field) Kind() Kind             { return f.ValueKind }
func (f *Field) Accept(v Visitor) error { return v.VisitField(f) }
func (f *Field) Fingerprint() uint64 {
	return utils.FingerprintString("field:" + f.Table + "." + f.Name + ":" + f.Alias)
}

// Star is the projection wildcard used by COUNT(*).
func Star() *Field { return &Field{Name: "*", ValueKind: KindInt} }

// Value is a literal bound as a query parameter at compile time.
type Value struct {
	Val       any
	ValueKind Kind
}

// NewValue infers the literal's kind from its Go type. The second return is
// false for Go types that have no relational mapping.
func NewValue(val any) (*Value, bool) {
	k, ok := KindOf(val)
	if !ok {
		return nil, false
	}
	return &Value{Val: val, ValueKind: k}, true
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Kind() Kind               { return v.ValueKind }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }
func (v *Value) Fingerprint() uint64 {
	return utils.FingerprintString("val:" + strconv.Itoa(int(v.ValueKind)) + ":" + fmt.Sprint(v.Val))
}

// KindOf maps a Go literal to its expression kind.
func KindOf(val any) (Kind, bool) {
	switch val.(type) {
	case nil:
		return KindNull, true
	case bool:
		return KindBool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt, true
	case float32, float64:
		return KindFloat, true
	case string:
		return KindString, true
	case time.Time:
		return KindTime, true
	case []byte:
		return KindBytes, true
	default:
		return KindNone, false
	}
}

// List is an ordered literal list, the right-hand side of IN.
type List struct {
	Values   []*Value
	ElemKind Kind
}

func (l *List) Type() NodeType         { return NodeList }
func (l *List) Kind() Kind             { return l.ElemKind }
func (l *List) Accept(v Visitor) error { return v.VisitList(l) }
func (l *List) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("list:"))
	for _, val := range l.Values {
		_, _ = h.Write(utils.U64ToBytes(val.Fingerprint()))
	}
	return h.Sum64()
}

// Range is the two-operand right-hand side of BETWEEN.
type Range struct {
	Lo Node
	Hi Node
}

func (r *Range) Type() NodeType         { return NodeRange }
func (r *Range) Kind() Kind             { return r.Lo.Kind() }
func (r *Range) Accept(v Visitor) error { return v.VisitRange(r) }
func (r *Range) Fingerprint() uint64 {
	return utils.Mix64(utils.FingerprintString("range"), utils.Mix64(r.Lo.Fingerprint(), r.Hi.Fingerprint()))
}

// BinaryExpr applies an infix operator. ResultKind is fixed by the
// constructing combinator, which has already validated the operands.
type BinaryExpr struct {
	Left       Node
	Operator   string
	Right      Node
	ResultKind Kind
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Kind() Kind             { return b.ResultKind }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }
func (b *BinaryExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("bin:" + b.Operator))
	_, _ = h.Write(utils.U64ToBytes(b.Left.Fingerprint()))
	_, _ = h.Write(utils.U64ToBytes(b.Right.Fingerprint()))
	return h.Sum64()
}

// UnaryExpr applies a prefix (NOT) or postfix (IS NULL) operator.
type UnaryExpr struct {
	Operator   string
	Operand    Node
	Prefix     bool
	ResultKind Kind
}

func (u *UnaryExpr) Type() NodeType         { return NodeUnaryExpr }
func (u *UnaryExpr) Kind() Kind             { return u.ResultKind }
func (u *UnaryExpr) Accept(v Visitor) error { return v.VisitUnaryExpr(u) }
func (u *UnaryExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("unary:" + u.Operator))
	_, _ = h.Write(utils.U64ToBytes(u.Operand.Fingerprint()))
	return h.Sum64()
}

// FuncExpr is a function call. Aggregate marks COUNT/SUM/AVG/MAX/MIN so the
// compiler can enforce grouping rules.
type FuncExpr struct {
	Name       string
	Args       []Node
	Aggregate  bool
	ResultKind Kind
}

func (f *FuncExpr) Type() NodeType         { return NodeFunc }
func (f *FuncExpr) Kind() Kind             { return f.ResultKind }
func (f *FuncExpr) Accept(v Visitor) error { return v.VisitFunc(f) }
func (f *FuncExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("func:" + f.Name))
	for _, arg := range f.Args {
		_, _ = h.Write(utils.U64ToBytes(arg.Fingerprint()))
	}
	return h.Sum64()
}

// CastExpr converts an expression to another kind, e.g. the string form of a
// numeric field for concatenation.
type CastExpr struct {
	Expr       Node
	TargetKind Kind
}

func (c *CastExpr) Type() NodeType         { return NodeCast }
func (c *CastExpr) Kind() Kind             { return c.TargetKind }
func (c *CastExpr) Accept(v Visitor) error { return v.VisitCast(c) }
func (c *CastExpr) Fingerprint() uint64 {
	return utils.Mix64(utils.FingerprintString("cast:"+strconv.Itoa(int(c.TargetKind))), c.Expr.Fingerprint())
}

// GroupedExpr forces parentheses around a subexpression.
type GroupedExpr struct {
	Expr Node
}

func (g *GroupedExpr) Type() NodeType         { return NodeGroupedExpr }
func (g *GroupedExpr) Kind() Kind             { return g.Expr.Kind() }
func (g *GroupedExpr) Accept(v Visitor) error { return v.VisitGroupedExpr(g) }
func (g *GroupedExpr) Fingerprint() uint64 {
	return utils.Mix64(utils.FingerprintString("grouped"), g.Expr.Fingerprint())
}
