package dialect

import "github.com/quelldb/quell/ast"

type MySQL struct{}

func NewMySQL() Dialect { return MySQL{} }

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

func (MySQL) Placeholder(int) string { return "?" }

// MySQL has no LIMIT ALL; the manual's idiom for an unbounded LIMIT with an
// OFFSET is the maximum row count.
func (MySQL) LimitAll() string { return "18446744073709551615" }

func (MySQL) CastType(k ast.Kind) string {
	switch k {
	case ast.KindBool, ast.KindInt:
		return "SIGNED"
	case ast.KindFloat:
		return "DOUBLE"
	case ast.KindTime:
		return "DATETIME"
	case ast.KindBytes:
		return "BINARY"
	default:
		return "CHAR"
	}
}
