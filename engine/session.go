// Package engine executes compiled query plans against a backing store and
// materializes the results: tuple rows through Fetch and friends, whole
// entities through the generic All, One and First terminals.
package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/quelldb/quell/cache"
	"github.com/quelldb/quell/database"
	"github.com/quelldb/quell/dialect"
	"github.com/quelldb/quell/query"
	"github.com/quelldb/quell/schema"
	"github.com/quelldb/quell/visitor"
)

// Session ties a row source to a dialect and a plan cache. It is safe for
// concurrent use; each compilation gets its own visitor.
type Session struct {
	id      uuid.UUID
	db      database.Database
	dialect dialect.Dialect
	cache   cache.PlanCache
}

// NewSession creates a session with a default-sized plan cache.
func NewSession(db database.Database, d dialect.Dialect) *Session {
	return &Session{
		id:      uuid.New(),
		db:      db,
		dialect: d,
		cache:   cache.NewPlanCache(0),
	}
}

// WithCache swaps the plan cache; nil disables caching.
func (s *Session) WithCache(c cache.PlanCache) *Session {
	s.cache = c
	return s
}

// ID identifies the session in store error reports.
func (s *Session) ID() uuid.UUID { return s.id }

// Dialect is the SQL dialect this session compiles for.
func (s *Session) Dialect() dialect.Dialect { return s.dialect }

// Compile builds and renders the plan without executing it.
func (s *Session) Compile(b query.Builder) (string, []any, error) {
	stmt, err := b.Build()
	if err != nil {
		return "", nil, err
	}
	return visitor.NewSQLVisitor(s.dialect, s.cache).Build(stmt)
}

// Fetch runs the query and returns every matching row.
func (s *Session) Fetch(ctx context.Context, b query.Builder) ([]Row, error) {
	sql, args, err := s.Compile(b)
	if err != nil {
		return nil, err
	}
	return s.fetchRows(ctx, sql, args)
}

// FetchOne runs the query expecting exactly one row: zero rows is ErrNoResult
// and more than one is ErrNonUniqueResult.
func (s *Session) FetchOne(ctx context.Context, b query.Builder) (Row, error) {
	rows, err := s.Fetch(ctx, b)
	if err != nil {
		return Row{}, err
	}
	switch len(rows) {
	case 0:
		return Row{}, ErrNoResult
	case 1:
		return rows[0], nil
	default:
		return Row{}, ErrNonUniqueResult
	}
}

// FetchFirst runs the query with a limit of one and returns the first row.
// Under a total ordering it returns the same row Fetch would list first.
func (s *Session) FetchFirst(ctx context.Context, b query.Builder) (Row, error) {
	rows, err := s.Fetch(ctx, b.Limit(1))
	if err != nil {
		return Row{}, err
	}
	if len(rows) == 0 {
		return Row{}, ErrNoResult
	}
	return rows[0], nil
}

func (s *Session) fetchRows(ctx context.Context, sql string, args []any) ([]Row, error) {
	queryID := schema.NewULID()
	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, wrapStoreErr(ctx, queryID, sql, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, wrapStoreErr(ctx, queryID, sql, err)
	}
	index := columnIndex(cols)

	var out []Row
	for rows.Next() {
		row, err := scanRow(cols, index, rows)
		if err != nil {
			return nil, wrapStoreErr(ctx, queryID, sql, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(ctx, queryID, sql, err)
	}
	return out, nil
}
