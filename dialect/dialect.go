// Package dialect abstracts the SQL differences between supported stores.
// Every literal is bound as a parameter; dialects never render values inline.
package dialect

import "github.com/quelldb/quell/ast"

type Dialect interface {
	// Name identifies the dialect ("postgres", "sqlite", "mysql").
	Name() string
	// QuoteIdentifier quotes a table or column name.
	QuoteIdentifier(name string) string
	// Placeholder returns the bind marker for the n-th parameter (1-based).
	Placeholder(n int) string
	// LimitAll is the LIMIT operand meaning "no limit", used when a query
	// has an OFFSET but no LIMIT.
	LimitAll() string
	// CastType names the target type of a CAST for the given value kind.
	CastType(k ast.Kind) string
}
