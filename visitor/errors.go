package visitor

import (
	"errors"
	"fmt"
)

// Compile-time failures. Both are detected before any statement reaches the
// backing store.
var (
	ErrInvalidAggregation        = errors.New("invalid aggregation")
	ErrIncompleteCaseExpression  = errors.New("case expression has no otherwise fallback")
	ErrUnsupportedSubqueryAsFrom = errors.New("subquery is not a valid from source")
)

// InvalidAggregationError reports a projection that mixes aggregates and bare
// fields without grouping them, or a group key that is not projected.
type InvalidAggregationError struct {
	Field  string
	Reason string
}

func (e *InvalidAggregationError) Error() string {
	return fmt.Sprintf("invalid aggregation: %s %s", e.Field, e.Reason)
}

func (e *InvalidAggregationError) Unwrap() error { return ErrInvalidAggregation }
