package domain

import (
	"fmt"
	"strings"
)

// Operator combines a condition with the rest of a query. The first
// condition's operator selects the combination mode for the whole query
// rather than folding left to right (see the condition evaluator).
type Operator int

const (
	OpAnd Operator = iota
	OpOr
	OpAndNot
	OpOrNot
)

// String returns the external name of the operator
func (o Operator) String() string {
	switch o {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpAndNot:
		return "and_not"
	case OpOrNot:
		return "or_not"
	default:
		return "unknown"
	}
}

// ParseOperator parses the external name of a boolean operator
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and", "":
		return OpAnd, nil
	case "or":
		return OpOr, nil
	case "and_not", "and-not", "andnot":
		return OpAndNot, nil
	case "or_not", "or-not", "ornot":
		return OpOrNot, nil
	default:
		return OpAnd, fmt.Errorf("unknown operator: %q", s)
	}
}

// Negative reports whether the operator negates its condition
func (o Operator) Negative() bool {
	return o == OpAndNot || o == OpOrNot
}

// Condition is one field+pattern test within a query
type Condition struct {
	Field         string
	Pattern       string
	Type          PatternType
	CaseSensitive bool
	Op            Operator
}

// Query is an ordered condition list. It is treated as immutable once
// submitted for a search pass.
type Query []Condition
