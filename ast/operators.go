package ast

// Comparison operators.
const (
	OpEqual              = "="
	OpNotEqual           = "<>"
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
)

// Logical operators.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

// Pattern matching.
const (
	OpLike    = "LIKE"
	OpNotLike = "NOT LIKE"
)

// Set membership.
const (
	OpIn    = "IN"
	OpNotIn = "NOT IN"
)

// Null tests.
const (
	OpIsNull    = "IS NULL"
	OpIsNotNull = "IS NOT NULL"
)

// Ranges.
const (
	OpBetween    = "BETWEEN"
	OpNotBetween = "NOT BETWEEN"
)

// Arithmetic.
const (
	OpAdd      = "+"
	OpSubtract = "-"
	OpMultiply = "*"
	OpDivide   = "/"
)

// String concatenation.
const OpConcat = "||"

// Aggregate function names.
const (
	FnCount = "COUNT"
	FnSum   = "SUM"
	FnAvg   = "AVG"
	FnMax   = "MAX"
	FnMin   = "MIN"
)
