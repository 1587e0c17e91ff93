package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field identifiers understood by search and replace",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Scalar fields: any stored field name, e.g. title, abstractNote, url, DOI, ISBN, extra, publicationTitle, date")
		fmt.Println("Creator sub-fields: creator.firstName, creator.lastName, creator.fullName (search only)")
		fmt.Println("Set fields: tag")
		fmt.Println("Computed fields: itemType (matched by display name), collection (matched by numeric id)")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
