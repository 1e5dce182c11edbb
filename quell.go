// Package quell is a typed query builder and execution layer for relational
// data. Queries are assembled as immutable plans over schema descriptors,
// compiled once per distinct plan into parameterized SQL, and executed
// against postgres, sqlite, or mysql.
//
// This package re-exports the public surface of the subpackages so most
// programs only import quell.
package quell

import (
	"context"

	"github.com/quelldb/quell/connector"
	"github.com/quelldb/quell/engine"
	"github.com/quelldb/quell/query"
	"github.com/quelldb/quell/schema"
)

type (
	Builder    = query.Builder
	Expr       = query.Expr
	OrderSpec  = query.OrderSpec
	CaseChain  = query.CaseChain
	Session    = engine.Session
	Row        = engine.Row
	StoreError = engine.StoreError
	Descriptor = schema.Descriptor
	Relation   = schema.Relation
	Rel[T any] = schema.Rel[T]
	Config     = connector.Config
	Connection = connector.Connection
)

// Query construction.

func SelectFrom(d *Descriptor) Builder  { return query.SelectFrom(d) }
func Select(exprs ...Expr) Builder      { return query.Select(exprs...) }
func Col(d *Descriptor, n string) Expr  { return query.Col(d, n) }
func Val(v any) Expr                    { return query.Val(v) }
func Constant(v any) Expr               { return query.Constant(v) }
func Sub(b Builder) Expr                { return query.Sub(b) }
func Case() CaseChain                   { return query.Case() }

// Aggregates.

func Count(e Expr) Expr { return query.Count(e) }
func CountAll() Expr    { return query.CountAll() }
func Sum(e Expr) Expr   { return query.Sum(e) }
func Avg(e Expr) Expr   { return query.Avg(e) }
func Max(e Expr) Expr   { return query.Max(e) }
func Min(e Expr) Expr   { return query.Min(e) }

// Schema declaration.

func Describe[T any](table ...string) (*Descriptor, error) { return schema.Describe[T](table...) }
func MustDescribe[T any](table ...string) *Descriptor      { return schema.MustDescribe[T](table...) }

// Connecting and executing.

func Open(ctx context.Context, cfg Config) (Connection, error) { return connector.Open(ctx, cfg) }

func LoadConfig(path string) (Config, error) { return connector.LoadConfig(path) }

func NewSession(conn Connection) *Session {
	return engine.NewSession(conn.Database(), conn.Dialect())
}

// Entity terminals.

func All[T any](ctx context.Context, s *Session, b Builder) ([]T, error) {
	return engine.All[T](ctx, s, b)
}

func One[T any](ctx context.Context, s *Session, b Builder) (T, error) {
	return engine.One[T](ctx, s, b)
}

func First[T any](ctx context.Context, s *Session, b Builder) (T, error) {
	return engine.First[T](ctx, s, b)
}

// Common result errors, re-exported for errors.Is checks at call sites.
var (
	ErrNoResult        = engine.ErrNoResult
	ErrNonUniqueResult = engine.ErrNonUniqueResult
	ErrCancelled       = engine.ErrCancelled
)
