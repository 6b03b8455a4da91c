package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neuroflash/internal/app"
	"neuroflash/internal/config/env"
	"neuroflash/internal/simulate"
)

var (
	simSessions  int
	simAccuracy  float64
	simSeed      uint64
	simMaxRounds int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless sessions on virtual time with a bot player",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := env.NewArcadeConfig()
		if err != nil {
			return err
		}
		reg, err := app.LoadRegistry(cfg.RegistryPath())
		if err != nil {
			return err
		}

		logger.Debug("simulation starting",
			zap.Int("sessions", simSessions),
			zap.Float64("accuracy", simAccuracy),
			zap.Uint64("seed", simSeed),
		)
		report, err := simulate.Run(ctx, simulate.Options{
			Sessions:  simSessions,
			Accuracy:  simAccuracy,
			Seed:      simSeed,
			MaxRounds: simMaxRounds,
			Rules:     app.RulesFromConfig(cfg),
			Registry:  reg,
			Logger:    logger.Named("simulate"),
		})
		if err != nil {
			return err
		}

		printReport(cmd, report)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simSessions, "sessions", 100, "Number of sessions")
	simulateCmd.Flags().Float64Var(&simAccuracy, "accuracy", 0.8, "Probability the bot plays a round correctly (0..1)")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "Random seed")
	simulateCmd.Flags().IntVar(&simMaxRounds, "max-rounds", simulate.DefaultMaxRounds, "Abort a session after this many rounds")
}

func printReport(cmd *cobra.Command, report *simulate.Report) {
	out := cmd.OutOrStdout()
	sum := report.Summarize()

	summary := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("SESSIONS", "COMPLETED", "CAPPED", "MEAN", "MEDIAN", "MIN", "MAX", "MEAN ROUNDS").
		Row(
			fmt.Sprint(sum.Sessions),
			fmt.Sprint(sum.Completed),
			fmt.Sprint(sum.Capped),
			fmt.Sprintf("%.2f", sum.MeanScore),
			fmt.Sprint(sum.Median),
			fmt.Sprint(sum.MinScore),
			fmt.Sprint(sum.MaxScore),
			fmt.Sprintf("%.1f", sum.MeanRound),
		)
	fmt.Fprintln(out, summary.Render())

	games := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("GAME", "WINS", "LOSSES", "WIN RATE")
	for _, g := range report.GameTypes() {
		s := report.Games[g]
		rate := 0.0
		if total := s.Wins + s.Losses; total > 0 {
			rate = float64(s.Wins) / float64(total) * 100
		}
		games.Row(string(g), fmt.Sprint(s.Wins), fmt.Sprint(s.Losses), fmt.Sprintf("%.1f%%", rate))
	}
	fmt.Fprintln(out, games.Render())

	if len(report.HighScores) == 0 {
		return
	}
	top := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "SCORE")
	for i, e := range report.HighScores {
		top.Row(fmt.Sprint(i+1), fmt.Sprint(e.Score))
	}
	fmt.Fprintln(out, top.Render())
}
