package commands

import (
	"refield/internal/domain"
)

// compiledCondition pairs a condition with its parsed field reference
// and pre-compiled matcher. Compilation happens once per search pass.
type compiledCondition struct {
	cond    domain.Condition
	ref     domain.FieldRef
	matcher *domain.Matcher
}

// compileQuery parses and compiles every condition. The first invalid
// pattern aborts compilation.
func compileQuery(q domain.Query) ([]compiledCondition, error) {
	compiled := make([]compiledCondition, 0, len(q))
	for _, cond := range q {
		m, err := domain.CompileMatcher(cond.Pattern, cond.Type, cond.CaseSensitive)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledCondition{
			cond:    cond,
			ref:     domain.ParseFieldRef(cond.Field),
			matcher: m,
		})
	}
	return compiled, nil
}

// evalResult is one record's verdict with every contributing field
type evalResult struct {
	matched bool
	fields  []string
	details []domain.MatchDetail
}

// evaluate decides whether a record satisfies a compiled query.
//
// The combination rule is keyed off the FIRST condition's operator: it
// selects the mode for the whole composite instead of a left-to-right
// fold. The and_not/or_not first-operator branches are kept exactly as
// the historical behavior even though the and_not one can never be
// satisfied; no UI assigns a negative operator to the first condition,
// and "fixing" the branch would silently change semantics.
func evaluate(rec *domain.Record, conds []compiledCondition) evalResult {
	if len(conds) == 0 {
		return evalResult{}
	}

	if len(conds) == 1 {
		c := conds[0]
		matched, details := resolveField(rec, c.ref, c.matcher)
		if !matched {
			return evalResult{}
		}
		return evalResult{
			matched: true,
			fields:  detailFields(details),
			details: details,
		}
	}

	// Every condition is evaluated independently regardless of its
	// operator; details from all satisfied conditions are unioned so
	// downstream preview/replace can act on each contributing field.
	results := make([]evalResult, len(conds))
	var fields []string
	var details []domain.MatchDetail
	for i, c := range conds {
		m, d := resolveField(rec, c.ref, c.matcher)
		results[i] = evalResult{matched: m, details: d}
		if m {
			fields = append(fields, detailFields(d)...)
			details = append(details, d...)
		}
	}

	allPositive := true
	anyPositive := false
	anyNegativeFired := false
	allMatched := true
	anyMatched := false
	for i, c := range conds {
		r := results[i]
		if c.cond.Op.Negative() {
			if r.matched {
				anyNegativeFired = true
			}
		} else {
			if r.matched {
				anyPositive = true
			} else {
				allPositive = false
			}
		}
		if r.matched {
			anyMatched = true
		} else {
			allMatched = false
		}
	}

	var matched bool
	switch conds[0].cond.Op {
	case domain.OpAnd:
		matched = allPositive
	case domain.OpOr:
		matched = anyPositive
	case domain.OpAndNot:
		// Condition 0 acts as both data point and operator source here:
		// all conditions must match while the first must not, which is
		// unsatisfiable. Preserved verbatim.
		matched = allMatched && !results[0].matched
	case domain.OpOrNot:
		matched = (anyMatched || allMatched) && !results[0].matched
	}

	// Any fired negative condition vetoes the composite regardless of
	// the branch above.
	if anyNegativeFired {
		matched = false
	}

	if !matched {
		return evalResult{}
	}
	return evalResult{matched: true, fields: fields, details: details}
}

func detailFields(details []domain.MatchDetail) []string {
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	return fields
}
