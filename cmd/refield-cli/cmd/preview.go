package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"refield/internal/application/commands"
	"refield/internal/domain"
)

var (
	replField    string
	replType     string
	replCaseSens bool
	replWith     string
)

var previewCmd = &cobra.Command{
	Use:   "preview <find>",
	Short: "Preview a replacement without modifying any record",
	Long: `Show the before/after value of every field a replacement would touch.
Nothing is written.

Examples:
  refield-cli preview '^http://' --field url --type regex --with 'https://'
  refield-cli preview 'Smith , ' --field creator.lastName --with 'Smith, '`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		find := args[0]

		patternType, err := domain.ParsePatternType(replType)
		if err != nil {
			return err
		}
		query := domain.Query{{
			Field:         replField,
			Pattern:       find,
			Type:          patternType,
			CaseSensitive: replCaseSens,
		}}
		opts := commands.ReplaceOptions{
			Fields:        []string{replField},
			Type:          patternType,
			CaseSensitive: replCaseSens,
			ReplaceWith:   replWith,
		}

		results, err := commands.NewSearchCommand(GetStore(), query, commands.SearchOptions{Scope: scope}).Execute(ctx)
		if err != nil {
			return err
		}

		total := 0
		for _, r := range results {
			changes, err := commands.PreviewFields(r.Record, find, opts)
			if err != nil {
				return err
			}
			for _, c := range changes {
				fmt.Printf("%d %s %s (%d replacement(s)):\n  - %s\n  + %s\n",
					r.Record.ID, r.Record.Key, c.Field, c.Replacements, c.Original, c.Replaced)
				total++
			}
		}
		if total == 0 {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("%d field change(s) across %d record(s)\n", total, len(results))
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&replField, "field", "f", "title", "field to rewrite")
	previewCmd.Flags().StringVarP(&replType, "type", "t", "regex", "pattern type: regex, exact, contains, like, glob")
	previewCmd.Flags().BoolVar(&replCaseSens, "case-sensitive", false, "match case sensitively")
	previewCmd.Flags().StringVarP(&replWith, "with", "w", "", "replacement template ($1..$9, ${name}, $&, $', $+)")
	rootCmd.AddCommand(previewCmd)
}
