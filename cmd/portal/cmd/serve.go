package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vintechs/portal/internal/app"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the portal and blocks until SIGINT or SIGTERM, then drains
in-flight requests and closes the database connections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		container := app.New(ctx, cfg)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := container.Close(closeCtx); err != nil {
				slog.Error("Failed to release resources", "error", err)
			}
		}()

		return container.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
