package ast

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is the sentinel all expression construction failures wrap.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeMismatchError reports incompatible operand kinds at expression
// construction time, before any plan is compiled or executed.
type TypeMismatchError struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot apply %s to %s and %s", e.Op, e.Left, e.Right)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// CheckComparable validates a comparison between two operand kinds.
func CheckComparable(op string, left, right Kind) error {
	if !left.ComparableWith(right) {
		return &TypeMismatchError{Op: op, Left: left, Right: right}
	}
	return nil
}

// CheckOrdered validates an ordered comparison (<, <=, >, >=, BETWEEN).
func CheckOrdered(op string, left, right Kind) error {
	if err := CheckComparable(op, left, right); err != nil {
		return err
	}
	if !left.Ordered() && left != KindNull {
		return &TypeMismatchError{Op: op, Left: left, Right: right}
	}
	return nil
}

// CheckBool validates that an operand is boolean-valued, for AND/OR/NOT.
func CheckBool(op string, k Kind) error {
	if k != KindBool {
		return &TypeMismatchError{Op: op, Left: k, Right: KindBool}
	}
	return nil
}

// CheckNumeric validates an arithmetic or numeric-aggregate operand.
func CheckNumeric(op string, k Kind) error {
	if !k.Numeric() {
		return &TypeMismatchError{Op: op, Left: k, Right: KindFloat}
	}
	return nil
}

// CheckString validates a string operand, for CONCAT and LIKE.
func CheckString(op string, k Kind) error {
	if k != KindString {
		return &TypeMismatchError{Op: op, Left: k, Right: KindString}
	}
	return nil
}
