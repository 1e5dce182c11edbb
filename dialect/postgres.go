package dialect

import (
	"strconv"

	"github.com/quelldb/quell/ast"
)

type Postgres struct{}

func NewPostgres() Dialect { return Postgres{} }

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) LimitAll() string { return "ALL" }

func (Postgres) CastType(k ast.Kind) string {
	switch k {
	case ast.KindBool:
		return "BOOLEAN"
	case ast.KindInt:
		return "BIGINT"
	case ast.KindFloat:
		return "DOUBLE PRECISION"
	case ast.KindTime:
		return "TIMESTAMP"
	case ast.KindBytes:
		return "BYTEA"
	default:
		return "TEXT"
	}
}
