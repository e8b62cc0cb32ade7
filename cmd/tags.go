package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// tagsCmd prints the loaded tag catalog.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Description"})
		for _, t := range appInstance.Catalog.Tags() {
			table.Append([]string{t.Name, t.Description})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
