package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neuroflash/internal/config"
	"neuroflash/internal/config/env"
	applogger "neuroflash/internal/logger"
)

// version подставляется при сборке через -ldflags "-X main.version=..."
var version = "dev"

var (
	verbose bool
	envFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neuroflash",
	Short: "Micro-game arcade: session server, simulator and terminal client",
	Long: `neuroflash runs rapid-fire micro-game sessions.

Each round shows a short instruction, then a timed micro-game. Wins add
score and raise difficulty, losses cost a life, and the session ends when
no lives remain.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := config.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
				return fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}

		cfg, err := env.NewLoggerConfig()
		if err != nil {
			return err
		}
		logger, err = applogger.New(applogger.Options{
			Level:   cfg.Level(),
			Format:  cfg.Format(),
			Verbose: verbose,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
