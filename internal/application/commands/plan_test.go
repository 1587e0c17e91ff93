package commands

import (
	"fmt"
	"testing"

	"refield/internal/domain"
	"refield/internal/ports"
)

func TestPlanPrefilter_NegativeOperatorForcesFullScan(t *testing.T) {
	q := domain.Query{
		{Field: "title", Pattern: "deep", Type: domain.PatternContains, Op: domain.OpAnd},
		{Field: "url", Pattern: "draft", Type: domain.PatternContains, Op: domain.OpAndNot},
	}
	plan := planPrefilter(mustCompile(t, q))
	if plan.Use {
		t.Errorf("negated conditions cannot narrow the candidate set, got %+v", plan)
	}

	q[1].Op = domain.OpOrNot
	if planPrefilter(mustCompile(t, q)).Use {
		t.Error("or_not must also force a full scan")
	}
}

func TestPlanPrefilter_TooManyFields(t *testing.T) {
	var q domain.Query
	for i := 0; i < 6; i++ {
		q = append(q, domain.Condition{
			Field:   fmt.Sprintf("field%d", i),
			Pattern: "term",
			Type:    domain.PatternContains,
			Op:      domain.OpAnd,
		})
	}
	if planPrefilter(mustCompile(t, q)).Use {
		t.Error("more than five distinct fields must skip pre-filtering")
	}
}

func TestPlanPrefilter_ContainsAndExact(t *testing.T) {
	q := domain.Query{{Field: "title", Pattern: "deep work", Type: domain.PatternContains}}
	plan := planPrefilter(mustCompile(t, q))
	if !plan.Use || plan.Operator != ports.QueryContains || plan.Term != "deep work" {
		t.Errorf("plan = %+v", plan)
	}

	q = domain.Query{{Field: "itemType", Pattern: "book", Type: domain.PatternExact}}
	plan = planPrefilter(mustCompile(t, q))
	if !plan.Use || plan.Operator != ports.QueryIs || plan.Term != "book" {
		t.Errorf("plan = %+v", plan)
	}
}

func TestPlanPrefilter_RegexLiteralExtraction(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		wantUse  bool
		wantTerm string
	}{
		{name: "anchors stripped", pattern: "^http://$", wantUse: true, wantTerm: "http"},
		{name: "longest run wins", pattern: `ab.*elsevier`, wantUse: true, wantTerm: "elsevier"},
		{name: "optional char excluded", pattern: `colou?r`, wantUse: true, wantTerm: "colo"},
		{name: "lazy quantifiers collapsed", pattern: `ab.*?suffix`, wantUse: true, wantTerm: "suffix"},
		{name: "alternation defeats extraction", pattern: "cat|dog", wantUse: false},
		{name: "no literal long enough", pattern: `\d\s*a`, wantUse: false},
		{name: "empty check idiom", pattern: `^\s*$`, wantUse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.Query{{Field: "url", Pattern: tt.pattern, Type: domain.PatternRegex}}
			plan := planPrefilter(mustCompile(t, q))
			if plan.Use != tt.wantUse {
				t.Fatalf("use = %v, want %v (plan %+v)", plan.Use, tt.wantUse, plan)
			}
			if tt.wantUse && plan.Term != tt.wantTerm {
				t.Errorf("term = %q, want %q", plan.Term, tt.wantTerm)
			}
		})
	}
}

func TestPlanPrefilter_DateFieldsNeverIndexed(t *testing.T) {
	q := domain.Query{{Field: "date", Pattern: "2024", Type: domain.PatternContains}}
	if planPrefilter(mustCompile(t, q)).Use {
		t.Error("date fields have no substring semantics in the indexed backend")
	}

	// A later indexable condition can still carry the plan.
	q = append(q, domain.Condition{Field: "title", Pattern: "deep", Type: domain.PatternContains, Op: domain.OpAnd})
	plan := planPrefilter(mustCompile(t, q))
	if !plan.Use || plan.Field != "title" {
		t.Errorf("plan = %+v, want title probe", plan)
	}
}

func TestPlanPrefilter_FirstIndexableConditionDecides(t *testing.T) {
	// The first indexable condition has no extractable literal: the
	// whole query falls back to a full scan even though the second
	// condition could be probed.
	q := domain.Query{
		{Field: "title", Pattern: `\d+`, Type: domain.PatternRegex, Op: domain.OpAnd},
		{Field: "url", Pattern: "example", Type: domain.PatternContains, Op: domain.OpAnd},
	}
	if planPrefilter(mustCompile(t, q)).Use {
		t.Error("extraction failure on the chosen condition must force a full scan")
	}
}

func TestPlanPrefilter_ShortContainsTerm(t *testing.T) {
	q := domain.Query{{Field: "title", Pattern: "a", Type: domain.PatternContains}}
	if planPrefilter(mustCompile(t, q)).Use {
		t.Error("single-character probes are not worth an indexed query")
	}
}
