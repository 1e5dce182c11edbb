// Package database abstracts the row source the execution adapter reads
// from. Two adapters are provided: one for pgx connection pools and one for
// anything speaking database/sql (sqlite, mysql).
package database

import "context"

type Database interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	PingContext(ctx context.Context) error
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
	Close() error
}

type Result interface {
	RowsAffected() (int64, error)
}
