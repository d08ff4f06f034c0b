package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/domain"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := log.NewLoggerFromEnv()

	if err := newServerCmd(logger).Execute(); err != nil {
		logger.Error("Server exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func newServerCmd(logger *log.Logger) *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the CreatorChain landing page and waitlist API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, autoMigrate)
		},
	}

	cmd.Flags().BoolVarP(&autoMigrate, "auto-migrate", "m", false, "Create the audit tables on boot (dev environments only)")
	return cmd
}

// serve runs until ctx is cancelled or the listener fails, then shuts down
// the HTTP server before releasing the stores it depends on.
func serve(ctx context.Context, logger *log.Logger, autoMigrate bool) error {
	logger.Info("CreatorChain landing server starting", "auto_migrate", autoMigrate)

	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrate)
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	if err := domain.SetupCoreDomain(appConfig); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received, shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
