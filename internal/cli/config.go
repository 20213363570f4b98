package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/firebase-admin-check/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect fbadmin configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Display()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}
