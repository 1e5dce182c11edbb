// Package connector opens and supervises connections to the supported
// stores: postgres through pgx pools, sqlite and mysql through database/sql.
package connector

import (
	"context"
	"fmt"

	"github.com/quelldb/quell/database"
	"github.com/quelldb/quell/dialect"
)

// Connection is one live store connection: the row source a session reads
// from plus the dialect its queries compile to.
type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Close() error
}

// Open connects to the store named by cfg.Driver. Retry behavior, pool
// sizing, and the connect timeout all come from the config.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout.Std())
		defer cancel()
	}
	switch cfg.Driver {
	case "postgres":
		return connectWithRetry(ctx, cfg.Retry, func(ctx context.Context) (Connection, error) {
			return newPostgresConnection(ctx, cfg)
		})
	case "sqlite":
		return connectWithRetry(ctx, cfg.Retry, func(ctx context.Context) (Connection, error) {
			return newSQLiteConnection(ctx, cfg)
		})
	case "mysql":
		return connectWithRetry(ctx, cfg.Retry, func(ctx context.Context) (Connection, error) {
			return newMySQLConnection(ctx, cfg)
		})
	default:
		return nil, fmt.Errorf("connector: unknown driver %q", cfg.Driver)
	}
}
