package commands

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"refield/internal/domain"
	"refield/internal/ports"
)

// ReplaceOptions controls preview and batch replace
type ReplaceOptions struct {
	// Fields lists the external field identifiers to rewrite
	Fields []string

	// Type selects the search-pattern semantics; regex replaces every
	// occurrence, other types substitute the literal pattern
	Type          domain.PatternType
	CaseSensitive bool

	// ReplaceWith is the replacement template, compiled once per
	// operation. Ignored when ReplaceFunc is set.
	ReplaceWith string

	// ReplaceFunc, when non-nil, is used as the replacer directly
	ReplaceFunc Replacer

	// Progress, when set, receives one replace-phase update per record
	Progress ports.ProgressFunc
}

func (o ReplaceOptions) replacer() Replacer {
	if o.ReplaceFunc != nil {
		return o.ReplaceFunc
	}
	return CompileReplacer(o.ReplaceWith)
}

// CommitResult reports one record's commit. Success false with message
// "No changes needed" means there was nothing to save, distinct from a
// failed save, whose attempted changes are still reported.
type CommitResult struct {
	Success bool
	Changes []domain.FieldChange
	Message string
}

// PreviewFields computes the field changes a replace would make to one
// record without mutating it. A change is emitted only when the
// replacement differs from the original value.
func PreviewFields(rec *domain.Record, find string, opts ReplaceOptions) ([]domain.FieldChange, error) {
	replace := opts.replacer()

	var changes []domain.FieldChange
	for _, field := range opts.Fields {
		ref := domain.ParseFieldRef(field)
		switch ref.Kind {
		case domain.FieldCreator:
			change, err := previewCreators(rec, ref, find, opts, replace)
			if err != nil {
				return nil, err
			}
			if change != nil {
				changes = append(changes, *change)
			}

		case domain.FieldScalar:
			original := rec.Field(ref.Name)
			if original == "" {
				continue
			}
			replaced, count, err := replaceValue(original, find, opts, replace)
			if err != nil {
				return nil, err
			}
			if replaced != original {
				changes = append(changes, domain.FieldChange{
					Field:        ref.Name,
					Original:     original,
					Replaced:     replaced,
					Replacements: count,
				})
			}

		default:
			slog.Debug("skipping non-replaceable field", "field", field)
		}
	}
	return changes, nil
}

// previewCreators clones the creator list, rewrites the targeted
// sub-field on every creator whose value changes, and reports one change
// carrying snapshots of the whole list: creators persist as an atomic
// unit, not as per-creator deltas.
func previewCreators(rec *domain.Record, ref domain.FieldRef, find string, opts ReplaceOptions, replace Replacer) (*domain.FieldChange, error) {
	if ref.Sub != domain.CreatorFirstName && ref.Sub != domain.CreatorLastName {
		// fullName is synthesized for searching and cannot be written back
		slog.Debug("skipping non-writable creator sub-field", "sub", ref.Sub)
		return nil, nil
	}

	clone := domain.CloneCreators(rec.Creators)
	changed := false
	total := 0
	for i := range clone {
		value, _ := clone[i].SubField(ref.Sub)
		if value == "" {
			continue
		}
		replaced, count, err := replaceValue(value, find, opts, replace)
		if err != nil {
			return nil, err
		}
		if replaced == value {
			continue
		}
		switch ref.Sub {
		case domain.CreatorFirstName:
			clone[i].FirstName = replaced
		case domain.CreatorLastName:
			clone[i].LastName = replaced
		}
		changed = true
		total += count
	}
	if !changed {
		return nil, nil
	}
	return &domain.FieldChange{
		Field:        ref.String(),
		Original:     domain.SerializeCreators(rec.Creators),
		Replaced:     domain.SerializeCreators(clone),
		Replacements: total,
		Creators:     clone,
	}, nil
}

// replaceValue rewrites every occurrence of the search pattern in one
// value. The replacement count is the number of matches in the ORIGINAL
// value: counting after substitution is unreliable when replacement text
// itself contains matchable substrings.
func replaceValue(value, find string, opts ReplaceOptions, replace Replacer) (string, int, error) {
	if opts.Type == domain.PatternRegex {
		expr := find
		if !opts.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return "", 0, fmt.Errorf("invalid pattern %q: %w", find, err)
		}
		return replaceAllRegexp(re, value, replace)
	}
	return replaceAllLiteral(value, find, opts.CaseSensitive, replace), countLiteral(value, find, opts.CaseSensitive), nil
}

func replaceAllRegexp(re *regexp.Regexp, value string, replace Replacer) (string, int, error) {
	matches := re.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, 0, nil
	}

	var sb strings.Builder
	last := 0
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		groups := make([]string, 0, len(loc)/2-1)
		for g := 1; g < len(loc)/2; g++ {
			gs, ge := loc[2*g], loc[2*g+1]
			if gs < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, value[gs:ge])
		}
		sb.WriteString(value[last:start])
		sb.WriteString(replace(Match{
			Text:   value[start:end],
			Groups: groups,
			Index:  start,
			Input:  value,
		}))
		last = end
	}
	sb.WriteString(value[last:])
	return sb.String(), len(matches), nil
}

// replaceAllLiteral substitutes every literal occurrence of find,
// case-folded unless caseSensitive. Match offsets always index the
// original value so folding that changes a rune's byte width cannot
// shift or truncate the replaced spans.
func replaceAllLiteral(value, find string, caseSensitive bool, replace Replacer) string {
	if find == "" {
		return value
	}

	var sb strings.Builder
	start := 0
	for start < len(value) {
		idx, length := literalIndex(value[start:], find, caseSensitive)
		if idx < 0 {
			break
		}
		at := start + idx
		sb.WriteString(value[start:at])
		sb.WriteString(replace(Match{
			Text:  value[at : at+length],
			Index: at,
			Input: value,
		}))
		start = at + length
	}
	sb.WriteString(value[start:])
	return sb.String()
}

func countLiteral(value, find string, caseSensitive bool) int {
	if find == "" {
		return 0
	}
	if caseSensitive {
		return strings.Count(value, find)
	}
	n, start := 0, 0
	for start < len(value) {
		idx, length := literalIndex(value[start:], find, false)
		if idx < 0 {
			break
		}
		n++
		start += idx + length
	}
	return n
}

func literalIndex(s, find string, caseSensitive bool) (int, int) {
	if caseSensitive {
		return strings.Index(s, find), len(find)
	}
	return domain.FoldIndex(s, find)
}

// Commit applies previewed changes to a record and saves it in one
// store transaction. An empty change list reports "No changes needed"
// without touching the store; a failed save still reports the changes
// that were attempted.
func Commit(store ports.RecordStore, rec *domain.Record, changes []domain.FieldChange) CommitResult {
	if len(changes) == 0 {
		return CommitResult{Success: false, Message: "No changes needed"}
	}

	for _, change := range changes {
		if change.Creators != nil {
			rec.Creators = change.Creators
			continue
		}
		rec.SetField(change.Field, change.Replaced)
	}

	if err := store.SaveRecord(rec); err != nil {
		return CommitResult{Success: false, Changes: changes, Message: err.Error()}
	}
	return CommitResult{Success: true, Changes: changes}
}

// BatchReplaceCommand applies one search/replace across many records
// with per-record isolation of failures
type BatchReplaceCommand struct {
	store   ports.RecordStore
	Records []*domain.Record
	Find    string
	Opts    ReplaceOptions
}

// NewBatchReplaceCommand creates a new BatchReplaceCommand
func NewBatchReplaceCommand(store ports.RecordStore, records []*domain.Record, find string, opts ReplaceOptions) *BatchReplaceCommand {
	return &BatchReplaceCommand{
		store:   store,
		Records: records,
		Find:    find,
		Opts:    opts,
	}
}

// Execute processes the records strictly in input order. Each record
// lands in exactly one bucket: modified, skipped (nothing to change), or
// errored. One record's failure never aborts the batch.
func (c *BatchReplaceCommand) Execute(ctx context.Context) domain.BatchResult {
	var result domain.BatchResult
	total := len(c.Records)

	for i, rec := range c.Records {
		if c.Opts.Progress != nil {
			c.Opts.Progress(ports.Progress{
				Phase:    ports.PhaseReplace,
				Current:  i + 1,
				Total:    total,
				RecordID: rec.ID,
			})
		}

		modified, err := c.processOne(rec)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, domain.BatchError{
				RecordID: rec.ID,
				Message:  err.Error(),
			})
		case modified:
			result.Modified++
		default:
			result.Skipped++
		}
	}

	return result
}

func (c *BatchReplaceCommand) processOne(rec *domain.Record) (modified bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("record %d: %v", rec.ID, r)
		}
	}()

	changes, err := PreviewFields(rec, c.Find, c.Opts)
	if err != nil {
		return false, err
	}
	if len(changes) == 0 {
		return false, nil
	}

	res := Commit(c.store, rec, changes)
	if !res.Success {
		return false, fmt.Errorf("%s", res.Message)
	}
	return true, nil
}
