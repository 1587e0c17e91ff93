package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"refield/internal/application/commands"
	"refield/internal/domain"
	"refield/internal/ports"
	"refield/internal/presets"
)

var (
	applyField    string
	applyType     string
	applyCaseSens bool
	applyWith     string
	applyQuiet    bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace <find>",
	Short: "Apply a replacement across all matching records",
	Long: `Search for matching records and rewrite the field in every one.
Each record saves independently; one failure never aborts the batch.

Examples:
  refield-cli replace '^http://' --field url --type regex --with 'https://'
  refield-cli replace '\s+' --field title --type regex --with ' '`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		find := args[0]
		patternType, err := domain.ParsePatternType(applyType)
		if err != nil {
			return err
		}
		return runBatch(find, commands.ReplaceOptions{
			Fields:        []string{applyField},
			Type:          patternType,
			CaseSensitive: applyCaseSens,
			ReplaceWith:   applyWith,
		}, domain.Query{{
			Field:         applyField,
			Pattern:       find,
			Type:          patternType,
			CaseSensitive: applyCaseSens,
		}})
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset <name>",
	Short: "Run a preloaded cleanup preset",
	Long: `Apply one of the preloaded cleanup recipes. Use "presets" to see
what is available.

Examples:
  refield-cli preset http-to-https
  refield-cli preset trim-title-whitespace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, ok := presets.Find(args[0])
		if !ok {
			return fmt.Errorf("unknown preset: %s", args[0])
		}
		return runBatch(p.Find, commands.ReplaceOptions{
			Fields:        []string{p.Field},
			Type:          p.FindType,
			CaseSensitive: p.CaseSensitive,
			ReplaceWith:   p.ReplaceWith,
		}, domain.Query{{
			Field:         p.Field,
			Pattern:       p.Find,
			Type:          p.FindType,
			CaseSensitive: p.CaseSensitive,
		}})
	},
}

func runBatch(find string, opts commands.ReplaceOptions, query domain.Query) error {
	ctx := context.Background()

	results, err := commands.NewSearchCommand(GetStore(), query, commands.SearchOptions{Scope: scope}).Execute(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matching records")
		return nil
	}

	records := make([]*domain.Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record)
	}

	if !applyQuiet {
		opts.Progress = func(p ports.Progress) {
			if p.Phase == ports.PhaseReplace {
				fmt.Printf("\r%d/%d", p.Current, p.Total)
			}
		}
	}

	batch := commands.NewBatchReplaceCommand(GetStore(), records, find, opts).Execute(ctx)
	if !applyQuiet {
		fmt.Println()
	}

	fmt.Printf("Modified: %d\nSkipped: %d\nErrors: %d\n", batch.Modified, batch.Skipped, len(batch.Errors))
	for _, e := range batch.Errors {
		fmt.Printf("  record %d: %s\n", e.RecordID, e.Message)
	}
	return nil
}

func init() {
	replaceCmd.Flags().StringVarP(&applyField, "field", "f", "title", "field to rewrite")
	replaceCmd.Flags().StringVarP(&applyType, "type", "t", "regex", "pattern type: regex, exact, contains, like, glob")
	replaceCmd.Flags().BoolVar(&applyCaseSens, "case-sensitive", false, "match case sensitively")
	replaceCmd.Flags().StringVarP(&applyWith, "with", "w", "", "replacement template ($1..$9, ${name}, $&, $', $+)")
	replaceCmd.Flags().BoolVarP(&applyQuiet, "quiet", "q", false, "suppress per-record progress")
	presetCmd.Flags().BoolVarP(&applyQuiet, "quiet", "q", false, "suppress per-record progress")
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(presetCmd)
}
