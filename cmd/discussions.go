package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"labeler/internal/config"
)

var discussionsRepo string

// discussionsCmd lists the recent unlabeled discussions.
var discussionsCmd = &cobra.Command{
	Use:   "discussions",
	Short: "List recent unlabeled discussions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		repo := appInstance.DefaultRepo
		if discussionsRepo != "" {
			repo, err = config.ParseRepo(discussionsRepo)
			if err != nil {
				return err
			}
		}

		discussions, err := appInstance.Labeler.ListUnlabeled(ctx, repo)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Number", "Category", "Title"})
		for _, d := range discussions {
			table.Append([]string{strconv.Itoa(d.Number), d.Category, d.Title})
		}
		table.Render()
		return nil
	},
}

func init() {
	discussionsCmd.Flags().StringVar(&discussionsRepo, "repo", "", "repository as owner/name (default from config)")
	rootCmd.AddCommand(discussionsCmd)
}
