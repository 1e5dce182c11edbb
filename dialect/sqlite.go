package dialect

import "github.com/quelldb/quell/ast"

type SQLite struct{}

func NewSQLite() Dialect { return SQLite{} }

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (SQLite) Placeholder(int) string { return "?" }

// SQLite has no LIMIT ALL; -1 is the documented "no limit" operand.
func (SQLite) LimitAll() string { return "-1" }

func (SQLite) CastType(k ast.Kind) string {
	switch k {
	case ast.KindBool, ast.KindInt:
		return "INTEGER"
	case ast.KindFloat:
		return "REAL"
	case ast.KindBytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}
