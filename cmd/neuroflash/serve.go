package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neuroflash/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket session server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("neuroflash starting", zap.String("version", version))
		if err := app.NewApp(logger, version).Run(ctx); err != nil {
			logger.Error("server stopped with error", zap.Error(err))
			return err
		}
		logger.Info("neuroflash stopped")
		return nil
	},
}
