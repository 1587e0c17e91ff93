package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refield/internal/adapters/sqlite"
	"refield/internal/config"
)

var (
	dbPath string
	scope  int64
	store  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "refield-cli",
	Short: "CLI for batch field cleanup of bibliographic records",
	Long: `refield-cli searches and rewrites fields across a library of
bibliographic records.

It provides commands to search by pattern, preview replacements,
apply them in batch, run preloaded cleanup presets, and import or
export record collections.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		store = sqlite.NewStore()
		return store.Open(dbPath)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", config.DBPath(), "path to the record database")
	rootCmd.PersistentFlags().Int64Var(&scope, "library", 0, "restrict to one library id (0 = all)")
}

// GetStore returns the initialized record store
func GetStore() *sqlite.Store {
	return store
}
