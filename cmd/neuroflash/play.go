package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neuroflash/internal/app"
	"neuroflash/internal/service"
	"neuroflash/internal/tui"
)

var playLanguage string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// терминал занят интерфейсом, логи сервиса глушим
		serv, err := app.NewLocalService(zap.NewNop())
		if err != nil {
			return err
		}
		defer serv.Close()

		return tui.Run(ctx, serv, service.CreateSessionParams{
			Language:       playLanguage,
			AcceptLanguage: localeFromEnv(),
		})
	},
}

func init() {
	playCmd.Flags().StringVar(&playLanguage, "lang", "", "Instruction language (default: negotiated from $LANG)")
}

// localeFromEnv "ru_RU.UTF-8" -> "ru-RU"
func localeFromEnv() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		v, _, _ = strings.Cut(v, ".")
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
