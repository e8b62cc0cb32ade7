package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// doctorCmd checks configuration and GitHub reachability.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and API connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}
		// Reaching this point means config validation, catalog load and
		// client construction all succeeded.
		color.Green("Configuration OK (%d tag(s) in catalog)", appInstance.Catalog.Len())

		repo := appInstance.DefaultRepo
		names := appInstance.Catalog.Names()
		_, missing, err := appInstance.GitHub.ResolveLabelIDs(ctx, repo, names)
		if err != nil {
			color.Red("GitHub API check failed: %v", err)
			return err
		}
		color.Green("GitHub API reachable (%s)", repo)

		if len(missing) > 0 {
			color.Yellow("Catalog tags without a repository label: %v", missing)
			color.Yellow("Create these labels manually; the labeler never creates labels")
		} else {
			color.Green("Every catalog tag has a matching repository label")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
