package commands

import (
	"regexp"
	"strings"

	"refield/internal/domain"
	"refield/internal/ports"
)

// Pre-filtering is skipped once a query references more distinct fields
// than this; the indexed query would be too complex to pay off.
const maxPrefilterFields = 5

// prefilterPlan describes how to narrow the candidate set with one
// indexed datastore query before the per-record evaluation pass. The
// plan is strictly advisory: it changes which candidates are examined,
// never the matching semantics.
type prefilterPlan struct {
	Use      bool
	Field    string
	Operator string
	Term     string
}

// Scalar fields with no substring semantics in the indexed backend.
// Date conditions are always resolved record by record.
var nonIndexableFields = map[string]bool{
	"date":         true,
	"accessDate":   true,
	"filingDate":   true,
	"issueDate":    true,
	"dateAdded":    true,
	"dateModified": true,
}

// planPrefilter inspects a compiled query and decides whether an indexed
// pre-filter query can safely narrow the record set. A zero-value plan
// means full scan.
func planPrefilter(conds []compiledCondition) prefilterPlan {
	if len(conds) == 0 {
		return prefilterPlan{}
	}

	distinct := map[string]bool{}
	for _, c := range conds {
		distinct[c.cond.Field] = true
		// A negated condition cannot narrow the candidate set without
		// risking false exclusion.
		if c.cond.Op.Negative() {
			return prefilterPlan{}
		}
	}
	if len(distinct) > maxPrefilterFields {
		return prefilterPlan{}
	}

	for _, c := range conds {
		if !fieldIndexable(c.ref) {
			continue
		}
		if strings.Contains(c.cond.Pattern, "|") {
			continue
		}
		if c.matcher.EmptyCheck() {
			// An indexed "contains" search cannot express "field is empty".
			continue
		}

		// The first indexable condition decides: either a probe term can
		// be extracted from it, or the whole query falls back to a full
		// scan.
		op, term := extractProbe(c.cond)
		if term == "" {
			return prefilterPlan{}
		}
		return prefilterPlan{
			Use:      true,
			Field:    c.cond.Field,
			Operator: op,
			Term:     term,
		}
	}

	return prefilterPlan{}
}

func fieldIndexable(ref domain.FieldRef) bool {
	if ref.Kind == domain.FieldScalar {
		return !nonIndexableFields[ref.Name]
	}
	return true
}

var alnumRun = regexp.MustCompile(`[A-Za-z0-9]+`)

// extractProbe derives the indexed query term from a condition pattern.
// Exact patterns probe with "is"; everything else probes with "contains"
// on a literal substring of the pattern.
func extractProbe(cond domain.Condition) (string, string) {
	switch cond.Type {
	case domain.PatternExact:
		if cond.Pattern == "" {
			return "", ""
		}
		return ports.QueryIs, cond.Pattern

	case domain.PatternContains:
		if len(cond.Pattern) < 2 {
			return "", ""
		}
		return ports.QueryContains, cond.Pattern

	default:
		if term := literalFromPattern(cond.Pattern); term != "" {
			return ports.QueryContains, term
		}
		return "", ""
	}
}

// literalFromPattern extracts a literal probe from a regex or wildcard
// pattern: strip leading/trailing anchors, collapse optional-quantifier
// artifacts (x?, *?, +?), then take the longest contiguous alphanumeric
// run of at least two characters.
func literalFromPattern(pattern string) string {
	p := strings.TrimPrefix(pattern, "^")
	p = strings.TrimSuffix(p, "$")
	p = strings.ReplaceAll(p, "*?", " ")
	p = strings.ReplaceAll(p, "+?", " ")
	p = collapseOptionals(p)

	best := ""
	for _, run := range alnumRun.FindAllString(p, -1) {
		if len(run) > len(best) {
			best = run
		}
	}
	if len(best) < 2 {
		return ""
	}
	return best
}

// collapseOptionals replaces x? pairs with a run break: a character the
// pattern does not require cannot take part in a literal probe, and the
// characters around it are not contiguous in every matching value.
func collapseOptionals(p string) string {
	var sb strings.Builder
	runes := []rune(p)
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && runes[i+1] == '?' {
			sb.WriteByte(' ')
			i++
			continue
		}
		if runes[i] == '?' {
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}
