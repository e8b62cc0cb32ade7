package cmd

import (
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"labeler/internal/server"
)

var serveAddr string

// serveCmd runs the webhook HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook HTTP server",
	Long: `Starts an HTTP server receiving GitHub discussion webhooks. Deliveries
are verified against SECRET_KEY; discussion-created events are labeled
inline, or queued when redis.address is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := appInstance.Config

		if cfg.Server.SecretKey == "" {
			log.Warn("SECRET_KEY is not set; webhook deliveries cannot be verified")
		}

		var enqueuer *asynq.Client
		if cfg.Redis.Address != "" {
			enqueuer = asynq.NewClient(asynq.RedisClientOpt{
				Addr:     cfg.Redis.Address,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer enqueuer.Close()
			log.Info("Webhook events will be queued for the worker")
		}

		srv := server.New(appInstance.Labeler, enqueuer, cfg.Server.SecretKey)
		router := srv.Router()

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		log.Infof("Starting webhook server on %s", addr)
		if err := router.Run(addr); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
