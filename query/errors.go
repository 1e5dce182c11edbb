package query

import (
	"errors"
	"fmt"
)

// Plan-construction failures. All of them surface from Build (and therefore
// from every terminal operation) before anything executes.
var (
	ErrIncompleteQuery = errors.New("incomplete query: no from source")

	ErrMissingJoinPredicate = errors.New("theta join requires an explicit on predicate")

	// ErrUnsupportedSubqueryPosition rejects a subquery in the FROM position.
	// This is a deliberate limitation of compiled-plan semantics: rewrite the
	// query as a join, or run it as two separate queries.
	ErrUnsupportedSubqueryPosition = errors.New(
		"subquery is not supported as a from source: rewrite as a join or split into two queries")

	// ErrNotEntityProjection rejects entity terminals (All/One/First) on a
	// query whose projection is not a whole entity.
	ErrNotEntityProjection = errors.New("entity fetch requires an entity projection; use Fetch for tuples")

	// ErrInvalidFetchJoin rejects FetchJoin on anything but a relationship
	// join.
	ErrInvalidFetchJoin = errors.New("fetch join requires a relationship join")
)

// MissingJoinPredicateError names the joined table that lacks an ON clause.
type MissingJoinPredicateError struct {
	Table string
}

func (e *MissingJoinPredicateError) Error() string {
	return fmt.Sprintf("theta join on %q requires an explicit on predicate", e.Table)
}

func (e *MissingJoinPredicateError) Unwrap() error { return ErrMissingJoinPredicate }
