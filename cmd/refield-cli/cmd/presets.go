package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"refield/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preloaded cleanup presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range presets.All() {
			fmt.Printf("%-28s [%s] %s\n", p.Name, p.Field, p.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
