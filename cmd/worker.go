package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"labeler/internal/app"
	"labeler/internal/models"
	"labeler/internal/tasks"
	"labeler/internal/worker"
)

// workerCmd runs the Asynq worker plus the periodic scan scheduler.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background job worker",
	Long: `Starts the Asynq worker process handling discussion scan and label
tasks, plus a scheduler that enqueues a scan every run_interval_minutes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		return runWorker(appInstance)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(appInstance *app.App) error {
	cfg := appInstance.Config
	if cfg.Redis.Address == "" {
		return fmt.Errorf("%w: redis.address is required for worker mode", models.ErrConfiguration)
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	enqueuer := asynq.NewClient(redisOpts)
	defer enqueuer.Close()

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      cfg.Worker.Queues,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Errorf("Task failed: type=%s payload=%s err=%v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, worker.Deps{
		Labeler:     appInstance.Labeler,
		Enqueuer:    enqueuer,
		DefaultRepo: appInstance.DefaultRepo,
	})

	scheduler := asynq.NewScheduler(redisOpts, nil)
	cronspec := fmt.Sprintf("@every %dm", cfg.RunIntervalMinutes)
	if _, err := scheduler.Register(cronspec, tasks.NewScanTask()); err != nil {
		return fmt.Errorf("failed to register scan schedule: %w", err)
	}

	log.Infof("Starting worker (concurrency: %d, scan interval: %s)", cfg.Worker.Concurrency, cfg.RunInterval())
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start worker server: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	log.Info("Shutdown signal received, stopping worker")
	scheduler.Shutdown()
	srv.Shutdown()
	return nil
}
