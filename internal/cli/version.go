package cli

import (
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fbadmin version %s\n", cmd.Root().Version)
		fmt.Fprintln(out, "\nComponents:")
		fmt.Fprintf(out, "  Firebase Admin Go SDK: v%s\n", firebase.Version)
	},
}
