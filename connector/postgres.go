package connector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quelldb/quell/database"
	"github.com/quelldb/quell/dialect"
)

// postgresConnection wraps a pgx connection pool.
type postgresConnection struct {
	pool    *pgxpool.Pool
	dialect dialect.Dialect
}

func newPostgresConnection(ctx context.Context, cfg Config) (Connection, error) {
	cfg = cfg.withPoolDefaults()

	dsn := newDSNBuilder("postgres").
		auth(cfg.Username, cfg.Password).
		address(cfg.Host, cfg.Port).
		db(cfg.Database).
		param("sslmode", cfg.SSLMode).
		extra(cfg.Params).
		build()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("connector: parse postgres dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime.Std()
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime.Std()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &postgresConnection{pool: pool, dialect: dialect.NewPostgres()}, nil
}

func (p *postgresConnection) Database() database.Database { return database.NewPgxDatabase(p.pool) }

func (p *postgresConnection) Dialect() dialect.Dialect { return p.dialect }

func (p *postgresConnection) Health(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("connector: not connected")
	}
	return p.pool.Ping(ctx)
}

func (p *postgresConnection) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}
