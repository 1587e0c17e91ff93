package commands

import (
	"context"
	"fmt"

	"refield/internal/application"
	"refield/internal/domain"
	"refield/internal/ports"
)

// SearchOptions controls one search pass
type SearchOptions struct {
	// Scope restricts the search to one library; ports.ScopeAll searches
	// every library.
	Scope int64

	// Progress, when set, receives filter and refine phase updates
	Progress ports.ProgressFunc
}

// SearchCommand runs a two-phase field search: an advisory indexed
// pre-filter followed by a sequential per-record evaluation pass.
type SearchCommand struct {
	store ports.RecordStore
	Query domain.Query
	Opts  SearchOptions
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(store ports.RecordStore, query domain.Query, opts SearchOptions) *SearchCommand {
	return &SearchCommand{
		store: store,
		Query: query,
		Opts:  opts,
	}
}

// Execute runs the search and returns results in scan order. Pattern
// validation failures abort the call with a SearchError before the
// store is touched.
func (c *SearchCommand) Execute(ctx context.Context) ([]domain.SearchResult, error) {
	if len(c.Query) == 0 {
		return nil, nil
	}

	conds, err := compileQuery(c.Query)
	if err != nil {
		return nil, &application.SearchError{
			Message: err.Error(),
			Code:    application.CodeInvalidRegex,
		}
	}

	ids, err := c.candidateIDs(conds)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := c.store.LoadRecords(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	var results []domain.SearchResult
	total := len(records)
	for i, rec := range records {
		// One refine update per record, match or not, so progress stays
		// monotonic and accurate.
		c.report(ports.Progress{Phase: ports.PhaseRefine, Current: i + 1, Total: total})

		res := evaluate(rec, conds)
		if res.matched {
			results = append(results, domain.SearchResult{
				Record:        rec,
				MatchedFields: res.fields,
				MatchDetails:  res.details,
			})
		}
	}

	return results, nil
}

// candidateIDs narrows the record set through the pre-filter plan when
// one is available, falling back to a full scan of the scope.
func (c *SearchCommand) candidateIDs(conds []compiledCondition) ([]int64, error) {
	plan := planPrefilter(conds)

	if plan.Use {
		ids, err := c.store.QueryByCondition(plan.Field, plan.Operator, plan.Term, c.Opts.Scope)
		if err != nil {
			return nil, fmt.Errorf("pre-filter query failed: %w", err)
		}
		c.report(ports.Progress{Phase: ports.PhaseFilter, Count: len(ids)})
		return ids, nil
	}

	c.report(ports.Progress{Phase: ports.PhaseFilter, Count: ports.CountPending})
	ids, err := c.store.AllRecordIDs(c.Opts.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	c.report(ports.Progress{Phase: ports.PhaseFilter, Count: len(ids)})
	return ids, nil
}

func (c *SearchCommand) report(p ports.Progress) {
	if c.Opts.Progress != nil {
		c.Opts.Progress(p)
	}
}
