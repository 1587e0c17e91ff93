package application

import (
	"fmt"
	"strings"

	"refield/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming
// whitespace). Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "searchPattern" -> "search pattern")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"searchPattern":  "search pattern",
		"replacePattern": "replace pattern",
		"field":          "field",
		"recordKey":      "record key",
	}
	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateQuery eagerly compiles every condition's pattern so that a
// malformed pattern aborts a search before any record is touched.
// Returns a SearchError with code INVALID_REGEX on the first failure.
func ValidateQuery(q domain.Query) error {
	for _, cond := range q {
		if _, err := domain.CompileMatcher(cond.Pattern, cond.Type, cond.CaseSensitive); err != nil {
			return &SearchError{Message: err.Error(), Code: CodeInvalidRegex}
		}
	}
	return nil
}
