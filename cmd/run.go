package cmd

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"labeler/internal/config"
)

var (
	runRepo   string
	runNumber int
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Label unlabeled discussions once",
	Long: `Scans the repository for recent unlabeled discussions, classifies each
against the tag catalog and applies the matching labels. With --number
only that discussion is processed; with --dry-run the chosen tags are
printed without applying anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		repo := appInstance.DefaultRepo
		if runRepo != "" {
			repo, err = config.ParseRepo(runRepo)
			if err != nil {
				return err
			}
		}

		if runNumber > 0 {
			if runDryRun {
				d, err := appInstance.GitHub.GetDiscussion(ctx, repo, runNumber)
				if err != nil {
					return err
				}
				tags, err := appInstance.Labeler.ClassifyDiscussion(ctx, d)
				if err != nil {
					return err
				}
				color.Cyan("Discussion %s#%d would get: %v", repo, runNumber, tags)
				return nil
			}
			// LabelByNumber skips discussions that already carry labels.
			applied, err := appInstance.Labeler.LabelByNumber(ctx, repo, runNumber)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				color.Yellow("No labels applied to discussion %s#%d", repo, runNumber)
				return nil
			}
			color.Green("Applied %v to discussion %s#%d", applied, repo, runNumber)
			return nil
		}

		if runDryRun {
			discussions, err := appInstance.Labeler.ListUnlabeled(ctx, repo)
			if err != nil {
				return err
			}
			for _, d := range discussions {
				tags, err := appInstance.Labeler.ClassifyDiscussion(ctx, d)
				if err != nil {
					log.Warnf("Skipping discussion %s#%d: %v", repo, d.Number, err)
					continue
				}
				color.Cyan("Discussion %s#%d would get: %v", repo, d.Number, tags)
			}
			return nil
		}

		labeled, err := appInstance.Labeler.ProcessRepo(ctx, repo)
		if err != nil {
			return fmt.Errorf("processing %s: %w", repo, err)
		}
		color.Green("Labeled %d discussion(s) in %s", labeled, repo)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runRepo, "repo", "", "repository as owner/name (default from config)")
	runCmd.Flags().IntVar(&runNumber, "number", 0, "process only this discussion number")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "classify but do not apply labels")
	rootCmd.AddCommand(runCmd)
}
