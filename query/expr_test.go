package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quelldb/quell/ast"
)

func TestColKinds(t *testing.T) {
	assert.Equal(t, ast.KindInt, Col(members, "age").Kind())
	assert.Equal(t, ast.KindString, Col(members, "name").Kind())
	assert.Error(t, Col(members, "missing").Err())
}

func TestComparisonTypeChecks(t *testing.T) {
	age := Col(members, "age")
	name := Col(members, "name")

	assert.NoError(t, age.Eq(10).Err())
	assert.NoError(t, age.Eq(10.5).Err(), "numeric kinds compare freely")
	assert.NoError(t, name.Eq("x").Err())

	assert.ErrorIs(t, age.Eq("ten").Err(), ast.ErrTypeMismatch)
	assert.ErrorIs(t, name.Gt(5).Err(), ast.ErrTypeMismatch)
	assert.ErrorIs(t, age.Between(1, "two").Err(), ast.ErrTypeMismatch)
}

func TestPredicateKindIsBool(t *testing.T) {
	p := Col(members, "age").Goe(10)
	require.NoError(t, p.Err())
	assert.Equal(t, ast.KindBool, p.Kind())
}

func TestLogicalRequiresPredicates(t *testing.T) {
	age := Col(members, "age")
	assert.ErrorIs(t, age.And(age.Eq(1)).Err(), ast.ErrTypeMismatch)
	assert.ErrorIs(t, age.Eq(1).Or(age).Err(), ast.ErrTypeMismatch)
	assert.ErrorIs(t, age.Not().Err(), ast.ErrTypeMismatch)
	assert.NoError(t, age.Eq(1).Not().Err())
}

func TestErrorPropagatesThroughChain(t *testing.T) {
	bad := Col(members, "age").Eq("x")
	chained := bad.And(Col(members, "name").Eq("ok"))
	assert.ErrorIs(t, chained.Err(), ast.ErrTypeMismatch)
}

func TestInRejectsEmptyAndMismatched(t *testing.T) {
	age := Col(members, "age")
	assert.Error(t, age.In().Err())
	assert.ErrorIs(t, age.In(1, "two").Err(), ast.ErrTypeMismatch)
	assert.NoError(t, age.In(1, 2, 3).Err())
}

func TestLikeRequiresString(t *testing.T) {
	assert.NoError(t, Col(members, "name").Like("member%").Err())
	assert.ErrorIs(t, Col(members, "age").Like("4%").Err(), ast.ErrTypeMismatch)
}

func TestArithmeticKinds(t *testing.T) {
	age := Col(members, "age")
	sum := age.Add(1)
	require.NoError(t, sum.Err())
	assert.Equal(t, ast.KindInt, sum.Kind())

	scaled := age.Multiply(1.5)
	require.NoError(t, scaled.Err())
	assert.Equal(t, ast.KindFloat, scaled.Kind())

	assert.ErrorIs(t, Col(members, "name").Add(1).Err(), ast.ErrTypeMismatch)
}

func TestConcatAndCast(t *testing.T) {
	name := Col(members, "name")
	age := Col(members, "age")

	assert.ErrorIs(t, name.Concat(age).Err(), ast.ErrTypeMismatch,
		"numeric operand must be cast before concatenation")

	e := name.Concat(Val("_")).Concat(age.AsString())
	require.NoError(t, e.Err())
	assert.Equal(t, ast.KindString, e.Kind())
}

func TestAggregateTypeChecks(t *testing.T) {
	assert.NoError(t, Sum(Col(members, "age")).Err())
	assert.NoError(t, Avg(Col(members, "age")).Err())
	assert.ErrorIs(t, Sum(Col(members, "name")).Err(), ast.ErrTypeMismatch)
	assert.NoError(t, Max(Col(members, "name")).Err(), "max works on any ordered kind")
	assert.Equal(t, ast.KindFloat, Avg(Col(members, "age")).Kind())
	assert.Equal(t, ast.KindInt, CountAll().Kind())
}

func TestValRejectsUnsupportedLiterals(t *testing.T) {
	assert.ErrorIs(t, Val(map[string]int{}).Err(), ast.ErrTypeMismatch)
	assert.NoError(t, Val(42).Err())
}

func TestSubRequiresSingleColumn(t *testing.T) {
	one := Select(Max(Col(members, "age"))).From(members)
	assert.NoError(t, Sub(one).Err())

	many := Select(Col(members, "name"), Col(members, "age")).From(members)
	assert.Error(t, Sub(many).Err())

	entity := SelectFrom(members)
	assert.Error(t, Sub(entity).Err(), "entity projection is more than one column")
}

func TestSubqueryKindFlowsIntoComparisons(t *testing.T) {
	maxAge := Select(Max(Col(members, "age"))).From(members)
	assert.NoError(t, Col(members, "age").Eq(maxAge).Err())

	names := Select(Col(members, "name")).From(members)
	assert.ErrorIs(t, Col(members, "age").Eq(names).Err(), ast.ErrTypeMismatch)
}

// =========================================================================
// Case expressions
// =========================================================================

func TestSimpleCaseConstruction(t *testing.T) {
	e := Col(members, "age").
		When(10).Then("ten").
		When(20).Then("twenty").
		Otherwise("other")
	require.NoError(t, e.Err())
	assert.Equal(t, ast.KindString, e.Kind())
}

func TestSearchedCaseRequiresPredicates(t *testing.T) {
	c := Case().When(Col(members, "age")) // not a predicate
	e := c.Then("x").Otherwise("y")
	assert.ErrorIs(t, e.Err(), ast.ErrTypeMismatch)

	e = Case().When("not an expr").Then("x").Otherwise("y")
	assert.ErrorIs(t, e.Err(), ast.ErrTypeMismatch)
}

func TestCaseBranchKindsMustAgree(t *testing.T) {
	e := Col(members, "age").
		When(10).Then("ten").
		When(20).Then(20).
		Otherwise("other")
	assert.ErrorIs(t, e.Err(), ast.ErrTypeMismatch)

	e = Col(members, "age").
		When(10).Then("ten").
		Otherwise(0)
	assert.ErrorIs(t, e.Err(), ast.ErrTypeMismatch)
}

func TestCaseRequiresBranches(t *testing.T) {
	assert.Error(t, Case().Otherwise("x").Err())
}

func TestOrderSpecCarriesErrors(t *testing.T) {
	_, err := SelectFrom(members).
		OrderBy(Col(members, "missing").Asc()).
		Build()
	assert.Error(t, err)
}
