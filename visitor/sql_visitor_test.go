package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quelldb/quell/cache"
	"github.com/quelldb/quell/dialect"
	"github.com/quelldb/quell/query"
	"github.com/quelldb/quell/schema"
)

type Team struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Member struct {
	ID     int64   `db:"id"`
	Name   *string `db:"name"`
	Age    int64   `db:"age"`
	TeamID *int64  `db:"team_id"`
	Team   schema.Rel[Team]
}

var (
	teams   = schema.MustDescribe[Team]("teams")
	members = schema.MustDescribe[Member]("members").BelongsTo("Team", teams, "team_id", "id")
)

func compile(t *testing.T, b query.Builder) (string, []any) {
	t.Helper()
	stmt, err := b.Build()
	require.NoError(t, err)
	sql, args, err := NewSQLVisitor(dialect.NewPostgres(), nil).Build(stmt)
	require.NoError(t, err)
	return sql, args
}

func compileErr(t *testing.T, b query.Builder) error {
	t.Helper()
	stmt, err := b.Build()
	require.NoError(t, err)
	_, _, err = NewSQLVisitor(dialect.NewPostgres(), nil).Build(stmt)
	require.Error(t, err)
	return err
}

func TestSimpleSelect(t *testing.T) {
	sql, args := compile(t, query.SelectFrom(members).
		Where(query.Col(members, "name").Eq("member1")))

	assert.Equal(t,
		`SELECT "members"."id", "members"."name", "members"."age", "members"."team_id" FROM "members" WHERE "members"."name" = $1`,
		sql)
	assert.Equal(t, []any{"member1"}, args)
}

func TestWhereChainEqualsConjunction(t *testing.T) {
	name := query.Col(members, "name")
	age := query.Col(members, "age")

	chained := query.SelectFrom(members).
		Where(name.Eq("member1")).
		Where(age.Eq(10))
	conjoined := query.SelectFrom(members).
		Where(name.Eq("member1").And(age.Eq(10)))
	variadic := query.SelectFrom(members).
		Where(name.Eq("member1"), age.Eq(10))

	sqlA, argsA := compile(t, chained)
	sqlB, argsB := compile(t, conjoined)
	sqlC, argsC := compile(t, variadic)

	assert.Equal(t, sqlA, sqlB)
	assert.Equal(t, sqlA, sqlC)
	assert.Equal(t, argsA, argsB)
	assert.Equal(t, argsA, argsC)

	stmtA, _ := chained.Build()
	stmtB, _ := conjoined.Build()
	assert.Equal(t, stmtA.Fingerprint(), stmtB.Fingerprint())
}

func TestRecompileIsByteIdentical(t *testing.T) {
	b := query.SelectFrom(members).
		Where(query.Col(members, "age").Between(20, 30)).
		OrderBy(query.Col(members, "age").Desc()).
		Limit(2).Offset(1)

	c := cache.NewPlanCache(0)
	stmt, err := b.Build()
	require.NoError(t, err)

	sql1, args1, err := NewSQLVisitor(dialect.NewPostgres(), c).Build(stmt)
	require.NoError(t, err)
	sql2, args2, err := NewSQLVisitor(dialect.NewPostgres(), c).Build(stmt)
	require.NoError(t, err)
	sql3, args3, err := NewSQLVisitor(dialect.NewPostgres(), nil).Build(stmt)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
	assert.Equal(t, sql1, sql3, "cache hits return what recompilation would produce")
	assert.Equal(t, args1, args3)
}

func TestCachedArgsAreIsolated(t *testing.T) {
	b := query.SelectFrom(members).Where(query.Col(members, "age").Eq(10))
	c := cache.NewPlanCache(0)
	stmt, err := b.Build()
	require.NoError(t, err)

	_, args1, err := NewSQLVisitor(dialect.NewPostgres(), c).Build(stmt)
	require.NoError(t, err)
	args1[0] = int64(999)

	_, args2, err := NewSQLVisitor(dialect.NewPostgres(), c).Build(stmt)
	require.NoError(t, err)
	assert.Equal(t, 10, args2[0], "mutating a returned arg slice must not poison the cache")
}

func TestOrderByNullPlacement(t *testing.T) {
	sql, _ := compile(t, query.SelectFrom(members).
		OrderBy(
			query.Col(members, "age").Desc(),
			query.Col(members, "name").Asc().NullsLast(),
		))
	assert.Contains(t, sql, ` ORDER BY "members"."age" DESC, "members"."name" ASC NULLS LAST`)
}

func TestLimitOffset(t *testing.T) {
	sql, _ := compile(t, query.SelectFrom(members).Limit(2).Offset(1))
	assert.Contains(t, sql, " LIMIT 2 OFFSET 1")

	sql, _ = compile(t, query.SelectFrom(members).Offset(3))
	assert.Contains(t, sql, " LIMIT ALL OFFSET 3", "offset without limit uses the dialect's unbounded form")
}

func TestRelationshipJoin(t *testing.T) {
	sql, args := compile(t, query.SelectFrom(members).
		Join("Team").
		Where(query.Col(teams, "name").Eq("teamA")))

	assert.Contains(t, sql, ` JOIN "teams" ON "members"."team_id" = "teams"."id"`)
	assert.Equal(t, []any{"teamA"}, args)
}

func TestLeftJoinWithOnPredicate(t *testing.T) {
	sql, args := compile(t, query.Select(
		query.Col(members, "name"),
		query.Col(teams, "name"),
	).From(members).
		LeftJoin("Team").
		On(query.Col(teams, "name").Eq("teamA")))

	assert.Contains(t, sql,
		` LEFT JOIN "teams" ON "members"."team_id" = "teams"."id" AND "teams"."name" = $1`)
	assert.Equal(t, []any{"teamA"}, args)
}

func TestThetaJoin(t *testing.T) {
	sql, _ := compile(t, query.Select(
		query.Col(members, "name"),
		query.Col(teams, "name"),
	).From(members).
		JoinEntity(teams).
		On(query.Col(members, "name").Eq(query.Col(teams, "name"))))

	assert.Contains(t, sql, ` JOIN "teams" ON "members"."name" = "teams"."name"`)
}

func TestBetweenAndIn(t *testing.T) {
	sql, args := compile(t, query.SelectFrom(members).
		Where(query.Col(members, "age").Between(10, 30)))
	assert.Contains(t, sql, `WHERE "members"."age" BETWEEN $1 AND $2`)
	assert.Equal(t, []any{10, 30}, args)

	sql, args = compile(t, query.SelectFrom(members).
		Where(query.Col(members, "age").In(10, 20, 30)))
	assert.Contains(t, sql, `WHERE "members"."age" IN ($1, $2, $3)`)
	assert.Equal(t, []any{10, 20, 30}, args)
}

func TestLogicalGrouping(t *testing.T) {
	name := query.Col(members, "name")
	age := query.Col(members, "age")

	sql, _ := compile(t, query.SelectFrom(members).
		Where(name.Eq("member1").Or(name.Eq("member2")).And(age.Gt(5))))

	assert.Contains(t, sql,
		`WHERE ("members"."name" = $1 OR "members"."name" = $2) AND "members"."age" > $3`)
}

func TestSubqueryInPredicate(t *testing.T) {
	sub := members.As("m_sub")
	sql, _ := compile(t, query.SelectFrom(members).
		Where(query.Col(members, "age").Eq(
			query.Select(query.Max(query.Col(sub, "age"))).From(sub),
		)))

	assert.Contains(t, sql,
		`WHERE "members"."age" = (SELECT MAX("m_sub"."age") FROM "members" AS "m_sub")`)
}

func TestSubqueryProjection(t *testing.T) {
	sub := members.As("m_sub")
	sql, _ := compile(t, query.Select(
		query.Col(members, "name"),
		query.Sub(query.Select(query.Avg(query.Col(sub, "age"))).From(sub)),
	).From(members))

	assert.Contains(t, sql,
		`SELECT "members"."name", (SELECT AVG("m_sub"."age") FROM "members" AS "m_sub") FROM "members"`)
}

func TestConcatWithCast(t *testing.T) {
	sql, args := compile(t, query.Select(
		query.Col(members, "name").
			Concat(query.Constant("_")).
			Concat(query.Col(members, "age").AsString()),
	).From(members))

	assert.Contains(t, sql,
		`SELECT "members"."name" || $1 || CAST("members"."age" AS TEXT) FROM "members"`)
	assert.Equal(t, []any{"_"}, args)
}

func TestGroupByWithAggregate(t *testing.T) {
	sql, _ := compile(t, query.Select(
		query.Col(teams, "name"),
		query.Avg(query.Col(members, "age")),
	).From(members).
		Join("Team").
		GroupBy(query.Col(teams, "name")))

	assert.Contains(t, sql, ` GROUP BY "teams"."name"`)
	assert.Contains(t, sql, `AVG("members"."age")`)
}

func TestHaving(t *testing.T) {
	sql, args := compile(t, query.Select(
		query.Col(teams, "name"),
		query.Sum(query.Col(members, "age")),
	).From(members).
		Join("Team").
		GroupBy(query.Col(teams, "name")).
		Having(query.Sum(query.Col(members, "age")).Gt(30)))

	assert.Contains(t, sql, ` HAVING SUM("members"."age") > $1`)
	assert.Equal(t, []any{30}, args)
}

func TestInvalidAggregation(t *testing.T) {
	// bare field projected next to an aggregate without a group by
	err := compileErr(t, query.Select(
		query.Col(members, "name"),
		query.Avg(query.Col(members, "age")),
	).From(members))
	assert.ErrorIs(t, err, ErrInvalidAggregation)

	// group key that never appears in the projection
	err = compileErr(t, query.Select(
		query.Avg(query.Col(members, "age")),
	).From(members).
		GroupBy(query.Col(members, "team_id")))
	assert.ErrorIs(t, err, ErrInvalidAggregation)
}

func TestAggregationScopeStopsAtSubqueries(t *testing.T) {
	// The subquery aggregates; the outer query does not. Outer bare fields
	// must not trip the grouping check.
	sub := members.As("m_sub")
	_, _ = compile(t, query.SelectFrom(members).
		Where(query.Col(members, "age").Goe(
			query.Select(query.Avg(query.Col(sub, "age"))).From(sub),
		)))
}

func TestIncompleteCase(t *testing.T) {
	age := query.Col(members, "age")
	err := compileErr(t, query.Select(
		query.Case().
			When(age.Between(0, 20)).Then("0~20").
			End(),
	).From(members))
	assert.ErrorIs(t, err, ErrIncompleteCaseExpression)
}

func TestSimpleCase(t *testing.T) {
	sql, args := compile(t, query.Select(
		query.Col(members, "age").
			When(10).Then("ten").
			When(20).Then("twenty").
			Otherwise("other"),
	).From(members))

	assert.Contains(t, sql,
		`SELECT CASE WHEN "members"."age" = $1 THEN $2 WHEN "members"."age" = $3 THEN $4 ELSE $5 END FROM "members"`)
	assert.Equal(t, []any{10, "ten", 20, "twenty", "other"}, args)
}

func TestSearchedCase(t *testing.T) {
	age := query.Col(members, "age")
	sql, _ := compile(t, query.Select(
		query.Case().
			When(age.Between(0, 20)).Then("0~20").
			When(age.Between(21, 30)).Then("21~30").
			Otherwise("other"),
	).From(members))

	assert.Contains(t, sql, `CASE WHEN "members"."age" BETWEEN $1 AND $2 THEN $3`)
	assert.Contains(t, sql, `ELSE $7 END`)
}
