package visitor

import "github.com/quelldb/quell/ast"

// validateSelect runs the static pre-execution checks on a plan: grouping
// rules over the projection list. Case-fallback checks happen during
// rendering, which the same Build call performs.
//
// Validation stays within one query scope: subqueries validate themselves
// when their own statement compiles as part of rendering.
func validateSelect(stmt *ast.SelectStmt) error {
	hasAggregate := false
	for _, col := range stmt.Columns {
		if containsAggregate(col) {
			hasAggregate = true
			break
		}
	}

	grouped := stmt.GroupBy != nil && len(stmt.GroupBy.Exprs) > 0
	if !hasAggregate && !grouped {
		return nil
	}

	groupKeys := make(map[uint64]bool)
	if grouped {
		for _, g := range stmt.GroupBy.Exprs {
			groupKeys[g.Fingerprint()] = true
		}
	}

	projected := make(map[uint64]bool)
	for _, col := range stmt.Columns {
		for _, f := range bareFields(col) {
			projected[f.Fingerprint()] = true
			if !groupKeys[f.Fingerprint()] {
				return &InvalidAggregationError{
					Field:  f.Table + "." + f.Name,
					Reason: "is selected without an aggregate and missing from group by",
				}
			}
		}
	}

	// Every group key must itself be a projected non-aggregate field.
	if grouped {
		for _, g := range stmt.GroupBy.Exprs {
			if f, ok := g.(*ast.Field); ok && !projected[f.Fingerprint()] {
				return &InvalidAggregationError{
					Field:  f.Table + "." + f.Name,
					Reason: "appears in group by but is not projected",
				}
			}
		}
	}
	return nil
}

// containsAggregate walks an expression, stopping at subquery boundaries.
func containsAggregate(n ast.Node) bool {
	if n == nil {
		return false
	}
	switch e := n.(type) {
	case *ast.FuncExpr:
		if e.Aggregate {
			return true
		}
		for _, a := range e.Args {
			if containsAggregate(a) {
				return true
			}
		}
	case *ast.BinaryExpr:
		return containsAggregate(e.Left) || containsAggregate(e.Right)
	case *ast.UnaryExpr:
		return containsAggregate(e.Operand)
	case *ast.GroupedExpr:
		return containsAggregate(e.Expr)
	case *ast.CastExpr:
		return containsAggregate(e.Expr)
	case *ast.CaseExpr:
		for _, w := range e.Whens {
			if containsAggregate(w.Cond) || containsAggregate(w.Result) {
				return true
			}
		}
		return containsAggregate(e.Else)
	case *ast.Range:
		return containsAggregate(e.Lo) || containsAggregate(e.Hi)
	}
	return false
}

// bareFields collects field references that are not wrapped by an aggregate,
// again stopping at subquery boundaries.
func bareFields(n ast.Node) []*ast.Field {
	var out []*ast.Field
	collectBareFields(n, &out)
	return out
}

func collectBareFields(n ast.Node, out *[]*ast.Field) {
	if n == nil {
		return
	}
	switch e := n.(type) {
	case *ast.Field:
		if e.Name != "*" {
			*out = append(*out, e)
		}
	case *ast.FuncExpr:
		if e.Aggregate {
			return
		}
		for _, a := range e.Args {
			collectBareFields(a, out)
		}
	case *ast.BinaryExpr:
		collectBareFields(e.Left, out)
		collectBareFields(e.Right, out)
	case *ast.UnaryExpr:
		collectBareFields(e.Operand, out)
	case *ast.GroupedExpr:
		collectBareFields(e.Expr, out)
	case *ast.CastExpr:
		collectBareFields(e.Expr, out)
	case *ast.CaseExpr:
		for _, w := range e.Whens {
			collectBareFields(w.Cond, out)
			collectBareFields(w.Result, out)
		}
		collectBareFields(e.Else, out)
	case *ast.Range:
		collectBareFields(e.Lo, out)
		collectBareFields(e.Hi, out)
	}
}
