package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"neuroflash/internal/app"
)

var registryPath string

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the micro-games of the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := registryPath
		if path == "" {
			path = os.Getenv("ARCADE_REGISTRY_PATH")
		}
		reg, err := app.LoadRegistry(path)
		if err != nil {
			return err
		}

		langs := reg.Languages()
		headers := append([]string{"#", "GAME", "BASE"}, upper(langs)...)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(headers...)
		for i, d := range reg.Definitions() {
			row := []string{fmt.Sprint(i + 1), string(d.Type), d.BaseDuration.String()}
			for _, l := range langs {
				row = append(row, d.Instruction[l])
			}
			t.Row(row...)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	gamesCmd.Flags().StringVar(&registryPath, "registry", "", "Registry YAML file (default: ARCADE_REGISTRY_PATH or built-in)")
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
