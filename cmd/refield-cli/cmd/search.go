package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"refield/internal/application"
	"refield/internal/application/commands"
	"refield/internal/domain"
)

var (
	searchField    string
	searchType     string
	searchCaseSens bool
	searchMode     string
	searchAnd      []string
	searchNot      []string
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search record fields by pattern",
	Long: `Search for records whose fields match a pattern.

Extra conditions narrow the result: --and adds a condition every record
must also satisfy, --not excludes records matching it.

Examples:
  refield-cli search "machine learning"
  refield-cli search '^https?://' --field url --type regex
  refield-cli search Smith --field creator.lastName --and 'itemType=Journal Article'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		query, err := buildQuery(args[0])
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(GetStore(), query, commands.SearchOptions{Scope: scope}).Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%d %s %s\n", r.Record.ID, r.Record.Key, r.Record.Field("title"))
			for _, d := range r.MatchDetails {
				fmt.Println(formatDetail(d))
			}
		}
		fmt.Printf("%d record(s)\n", len(results))
		return nil
	},
}

// buildQuery assembles the condition list from the positional pattern
// and the repeatable --and / --not flags.
func buildQuery(pattern string) (domain.Query, error) {
	patternType, err := domain.ParsePatternType(searchType)
	if err != nil {
		return nil, err
	}

	// The first condition's operator selects the combination mode for
	// the whole query.
	mode, err := application.ParseOperator(searchMode)
	if err != nil {
		return nil, err
	}

	query := domain.Query{{
		Field:         searchField,
		Pattern:       pattern,
		Type:          patternType,
		CaseSensitive: searchCaseSens,
		Op:            mode,
	}}
	for _, extra := range searchAnd {
		cond, err := parseCondition(extra, domain.OpAnd)
		if err != nil {
			return nil, err
		}
		query = append(query, cond)
	}
	for _, extra := range searchNot {
		cond, err := parseCondition(extra, domain.OpAndNot)
		if err != nil {
			return nil, err
		}
		query = append(query, cond)
	}
	return query, nil
}

// formatDetail renders one matched field for the result listing,
// marking the matched span when its position is known.
func formatDetail(d domain.MatchDetail) string {
	if d.MatchIndex < 0 || d.MatchIndex+d.MatchLength > len(d.Value) {
		return fmt.Sprintf("    %s: %s", d.Field, d.Value)
	}
	return fmt.Sprintf("    %s: %s[%s]%s",
		d.Field,
		d.Value[:d.MatchIndex],
		d.Value[d.MatchIndex:d.MatchIndex+d.MatchLength],
		d.Value[d.MatchIndex+d.MatchLength:],
	)
}

// parseCondition splits a "field=pattern" flag value. The pattern is
// matched as contains, case-insensitively.
func parseCondition(s string, op domain.Operator) (domain.Condition, error) {
	field, pattern, ok := strings.Cut(s, "=")
	if !ok || field == "" {
		return domain.Condition{}, fmt.Errorf("invalid condition %q: want field=pattern", s)
	}
	return domain.Condition{
		Field:   field,
		Pattern: pattern,
		Type:    domain.PatternContains,
		Op:      op,
	}, nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchField, "field", "f", "title", "field to search")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "contains", "pattern type: regex, exact, contains, like, glob")
	searchCmd.Flags().BoolVar(&searchCaseSens, "case-sensitive", false, "match case sensitively")
	searchCmd.Flags().StringVar(&searchMode, "mode", "and", "condition combination mode: and, or")
	searchCmd.Flags().StringArrayVar(&searchAnd, "and", nil, "extra field=pattern condition (repeatable)")
	searchCmd.Flags().StringArrayVar(&searchNot, "not", nil, "exclude records matching field=pattern (repeatable)")
	rootCmd.AddCommand(searchCmd)
}
