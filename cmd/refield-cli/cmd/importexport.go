package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"refield/internal/adapters/jsonfile"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import records from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := jsonfile.Import(args[0], GetStore())
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d record(s)\n", n)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Export records to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := jsonfile.Export(args[0], GetStore(), scope)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d record(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
