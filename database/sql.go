package database

import (
	"context"
	"database/sql"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db *sql.DB
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB) *SqlDatabase {
	return &SqlDatabase{db: db}
}

// QueryContext executes a query that returns rows.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SqlDatabase) Close() error { return s.db.Close() }

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

// Next prepares the next result row for reading.
func (s *SqlRows) Next() bool { return s.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

// Columns returns the column names.
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

// Err returns the error, if any, encountered during iteration.
func (s *SqlRows) Err() error { return s.rows.Err() }

// Close closes the rows iterator.
func (s *SqlRows) Close() error { return s.rows.Close() }

var _ Database = (*SqlDatabase)(nil)
