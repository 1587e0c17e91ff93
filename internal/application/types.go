package application

import "refield/internal/domain"

// Re-export domain types for use by adapters
type (
	Record       = domain.Record
	Creator      = domain.Creator
	Condition    = domain.Condition
	Query        = domain.Query
	SearchResult = domain.SearchResult
	MatchDetail  = domain.MatchDetail
	FieldChange  = domain.FieldChange
	BatchResult  = domain.BatchResult
	PatternType  = domain.PatternType
	Operator     = domain.Operator
)

// ParsePatternType parses the external name of a pattern type
func ParsePatternType(s string) (domain.PatternType, error) {
	return domain.ParsePatternType(s)
}

// ParseOperator parses the external name of a boolean operator
func ParseOperator(s string) (domain.Operator, error) {
	return domain.ParseOperator(s)
}
