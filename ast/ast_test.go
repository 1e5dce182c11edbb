package ast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindInt.Numeric())
	assert.True(t, KindFloat.Numeric())
	assert.False(t, KindString.Numeric())
	assert.False(t, KindBool.Numeric())

	assert.True(t, KindInt.Ordered())
	assert.True(t, KindString.Ordered())
	assert.True(t, KindTime.Ordered())
	assert.False(t, KindBool.Ordered())
	assert.False(t, KindBytes.Ordered())
}

func TestKindComparableWith(t *testing.T) {
	tests := []struct {
		name  string
		left  Kind
		right Kind
		want  bool
	}{
		{"IntWithInt", KindInt, KindInt, true},
		{"IntWithFloat", KindInt, KindFloat, true},
		{"IntWithString", KindInt, KindString, false},
		{"StringWithString", KindString, KindString, true},
		{"BoolWithInt", KindBool, KindInt, false},
		{"NullWithAnything", KindNull, KindString, true},
		{"AnythingWithNull", KindTime, KindNull, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.ComparableWith(tt.right))
		})
	}
}

func TestCheckHelpers(t *testing.T) {
	require.NoError(t, CheckComparable("=", KindInt, KindFloat))

	err := CheckComparable("=", KindInt, KindString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var tme *TypeMismatchError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, "=", tme.Op)
	assert.Equal(t, KindInt, tme.Left)
	assert.Equal(t, KindString, tme.Right)

	assert.Error(t, CheckOrdered("<", KindBool, KindBool))
	assert.NoError(t, CheckOrdered("<", KindString, KindString))
	assert.Error(t, CheckBool("AND", KindInt))
	assert.NoError(t, CheckBool("AND", KindBool))
	assert.Error(t, CheckNumeric("SUM", KindString))
	assert.Error(t, CheckString("LIKE", KindInt))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		val  any
		kind Kind
		ok   bool
	}{
		{"Nil", nil, KindNull, true},
		{"Bool", true, KindBool, true},
		{"Int", 42, KindInt, true},
		{"Int64", int64(42), KindInt, true},
		{"Uint32", uint32(7), KindInt, true},
		{"Float", 3.14, KindFloat, true},
		{"String", "x", KindString, true},
		{"Time", time.Now(), KindTime, true},
		{"Bytes", []byte{1}, KindBytes, true},
		{"Unsupported", map[string]int{}, KindNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := KindOf(tt.val)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, k)
		})
	}
}

func TestFingerprintStability(t *testing.T) {
	age := &Field{Table: "members", Name: "age", ValueKind: KindInt}
	ten, _ := NewValue(10)

	a := &BinaryExpr{Left: age, Operator: OpEqual, Right: ten, ResultKind: KindBool}
	b := &BinaryExpr{Left: age, Operator: OpEqual, Right: ten, ResultKind: KindBool}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintCoversLiterals(t *testing.T) {
	age := &Field{Table: "members", Name: "age", ValueKind: KindInt}
	ten, _ := NewValue(10)
	twenty, _ := NewValue(20)

	a := &BinaryExpr{Left: age, Operator: OpEqual, Right: ten, ResultKind: KindBool}
	b := &BinaryExpr{Left: age, Operator: OpEqual, Right: twenty, ResultKind: KindBool}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintCoversStructure(t *testing.T) {
	age := &Field{Table: "members", Name: "age", ValueKind: KindInt}
	ten, _ := NewValue(10)

	eq := &BinaryExpr{Left: age, Operator: OpEqual, Right: ten, ResultKind: KindBool}
	gt := &BinaryExpr{Left: age, Operator: OpGreaterThan, Right: ten, ResultKind: KindBool}
	assert.NotEqual(t, eq.Fingerprint(), gt.Fingerprint())
}

func TestSelectStmtClone(t *testing.T) {
	ten := 10
	stmt := &SelectStmt{
		Columns: []Node{&Field{Table: "members", Name: "age", ValueKind: KindInt}},
		From:    &Table{Name: "members", Alias: "members"},
		Where:   &WhereClause{Condition: &UnaryExpr{Operator: OpIsNull, Operand: &Field{Name: "name"}, ResultKind: KindBool}},
		Limit:   &LimitClause{Count: &ten},
	}

	c := stmt.Clone()
	c.Columns = append(c.Columns, Star())
	five := 5
	c.Limit.Count = &five
	c.Where.Condition = nil

	assert.Len(t, stmt.Columns, 1)
	assert.Equal(t, 10, *stmt.Limit.Count)
	assert.NotNil(t, stmt.Where.Condition)
}

func TestCloneFingerprintEqual(t *testing.T) {
	stmt := &SelectStmt{
		Columns: []Node{&Field{Table: "members", Name: "age", ValueKind: KindInt}},
		From:    &Table{Name: "members", Alias: "members"},
	}
	assert.Equal(t, stmt.Fingerprint(), stmt.Clone().Fingerprint())
}
