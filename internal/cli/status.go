package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/firebase-admin-check/internal/config"
	"github.com/blackwell-systems/firebase-admin-check/internal/emulator"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of the Auth emulator",
	Long:  `Check whether the configured Firebase Auth emulator is reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan)
		cyan.Fprintln(out, "Service          Status      Address")
		cyan.Fprintln(out, "────────────────────────────────────────")

		status := emulator.Check(cmd.Context(), cfg.EmulatorHost)
		printServiceStatus(cmd, "Auth Emulator", status, cfg.EmulatorHost)

		return nil
	},
}

func printServiceStatus(cmd *cobra.Command, name string, status emulator.Status, addr string) {
	var statusText string
	switch status {
	case emulator.StatusUp:
		statusText = color.GreenString("✓ UP      ")
	case emulator.StatusDown:
		statusText = color.RedString("✗ DOWN    ")
	case emulator.StatusDisabled:
		statusText = color.YellowString("- DISABLED")
		addr = "(set --emulator-host)"
	default:
		statusText = color.RedString("✗ UNKNOWN ")
	}

	color.New().Fprintf(cmd.OutOrStdout(), "%-16s %s  %s\n", name, statusText, addr)
}
