package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// agentCmd runs the periodic in-process loop for environments without
// Redis: an initial scan, then one scan per configured interval.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the periodic labeling loop in-process",
	Long: `Performs an initial labeling pass over the default repository and then
repeats every run_interval_minutes until interrupted. Use the worker
command instead when a Redis-backed queue is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		repo := appInstance.DefaultRepo
		interval := appInstance.Config.RunInterval()

		scan := func() {
			runID := uuid.NewString()
			log.WithField("run_id", runID).Infof("Scanning %s for unlabeled discussions", repo)
			labeled, err := appInstance.Labeler.ProcessRepo(ctx, repo)
			if err != nil {
				log.WithField("run_id", runID).Errorf("Scan failed: %v", err)
				return
			}
			log.WithField("run_id", runID).Infof("Scan complete, labeled %d discussion(s)", labeled)
		}

		log.Infof("Agent started: checking for new discussions every %s", interval)
		scan()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case <-ticker.C:
				scan()
			case <-shutdown:
				log.Info("Shutdown signal received, stopping agent")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
