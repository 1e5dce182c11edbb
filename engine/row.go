package engine

import (
	"fmt"

	"github.com/quelldb/quell/database"
)

// Row is one tuple of a projected query. Values are accessible by result
// column name or by projection position; NULL is represented as an absent
// value, distinguishable through IsNull, never as a zero value.
type Row struct {
	cols map[string]int
	vals []any
}

func scanRow(cols []string, index map[string]int, rows database.Rows) (Row, error) {
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return Row{}, err
	}
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	return Row{cols: index, vals: vals}, nil
}

// Len is the number of projected columns.
func (r Row) Len() int { return len(r.vals) }

// Get returns the value of the named result column.
func (r Row) Get(name string) (any, bool) {
	i, ok := r.cols[name]
	if !ok {
		return nil, false
	}
	return r.vals[i], true
}

// Index returns the value at projection position i.
func (r Row) Index(i int) any { return r.vals[i] }

// IsNull reports whether the named column is SQL NULL. An unknown column is
// not null, it is absent; Get distinguishes the two.
func (r Row) IsNull(name string) bool {
	i, ok := r.cols[name]
	return ok && r.vals[i] == nil
}

// IsNullAt reports whether position i is SQL NULL.
func (r Row) IsNullAt(i int) bool { return r.vals[i] == nil }

// Int converts the value at position i to int64. Stores widen small integer
// columns differently; this normalizes them.
func (r Row) Int(i int) (int64, error) {
	switch v := r.vals[i].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case nil:
		return 0, fmt.Errorf("engine: column %d is null", i)
	default:
		return 0, fmt.Errorf("engine: column %d is %T, not an integer", i, v)
	}
}

// Float converts the value at position i to float64.
func (r Row) Float(i int) (float64, error) {
	switch v := r.vals[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("engine: column %d is null", i)
	default:
		return 0, fmt.Errorf("engine: column %d is %T, not a float", i, v)
	}
}

// String converts the value at position i to a string.
func (r Row) String(i int) (string, error) {
	switch v := r.vals[i].(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("engine: column %d is null", i)
	default:
		return "", fmt.Errorf("engine: column %d is %T, not a string", i, v)
	}
}

func columnIndex(cols []string) map[string]int {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	return index
}
