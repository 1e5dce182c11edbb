package connector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/quelldb/quell/database"
	"github.com/quelldb/quell/dialect"
)

// mysqlConnection wraps a mysql database.
type mysqlConnection struct {
	db      *sql.DB
	dialect dialect.Dialect
}

func newMySQLConnection(ctx context.Context, cfg Config) (Connection, error) {
	cfg = cfg.withPoolDefaults()

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("connector: open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.MaxLifetime.Std())
	db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime.Std())

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &mysqlConnection{db: db, dialect: dialect.NewMySQL()}, nil
}

func (m *mysqlConnection) Database() database.Database { return database.NewSqlDatabase(m.db) }

func (m *mysqlConnection) Dialect() dialect.Dialect { return m.dialect }

func (m *mysqlConnection) Health(ctx context.Context) error { return m.db.PingContext(ctx) }

func (m *mysqlConnection) Close() error { return m.db.Close() }
