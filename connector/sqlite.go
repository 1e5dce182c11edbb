package connector

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/quelldb/quell/database"
	"github.com/quelldb/quell/dialect"
)

// sqliteConnection wraps a file-backed or in-memory sqlite database.
type sqliteConnection struct {
	db      *sql.DB
	dialect dialect.Dialect
}

func newSQLiteConnection(ctx context.Context, cfg Config) (Connection, error) {
	cfg = cfg.withPoolDefaults()

	db, err := sql.Open("sqlite", cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connector: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.MaxLifetime.Std())
	db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime.Std())

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteConnection{db: db, dialect: dialect.NewSQLite()}, nil
}

func (s *sqliteConnection) Database() database.Database { return database.NewSqlDatabase(s.db) }

func (s *sqliteConnection) Dialect() dialect.Dialect { return s.dialect }

func (s *sqliteConnection) Health(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqliteConnection) Close() error { return s.db.Close() }
