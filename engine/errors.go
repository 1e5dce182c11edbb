package engine

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoResult is returned by single-row terminals when the query matched
	// nothing.
	ErrNoResult = errors.New("engine: no result")

	// ErrNonUniqueResult is returned by FetchOne and One when more than one
	// row matched.
	ErrNonUniqueResult = errors.New("engine: query returned more than one result")

	// ErrCancelled is returned when the caller's context ended before the
	// query finished.
	ErrCancelled = errors.New("engine: query cancelled")
)

// StoreError wraps a failure from the backing store with the correlation id
// and compiled SQL of the query that hit it. Transient marks failures a
// caller may retry (connection loss, timeouts) as opposed to permanent ones
// (SQL rejected by the store).
type StoreError struct {
	QueryID   string
	SQL       string
	Transient bool
	Err       error
}

func (e *StoreError) Error() string {
	state := "permanent"
	if e.Transient {
		state = "transient"
	}
	return fmt.Sprintf("engine: store error (%s, query %s): %v", state, e.QueryID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection refused", "connection reset", "broken pipe", "timeout", "too many connections"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// wrapStoreErr folds a store failure into the engine error taxonomy. Context
// cancellation wins over whatever the driver reported.
func wrapStoreErr(ctx context.Context, queryID, sql string, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return &StoreError{QueryID: queryID, SQL: sql, Transient: isTransient(err), Err: err}
}
