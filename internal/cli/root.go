// Package cli wires the fbadmin cobra commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-fate/clio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "fbadmin",
	Short: "Firebase Admin SDK diagnostics",
	Long: `fbadmin initializes the Firebase Admin SDK from a service account
credential file and lists registered Authentication users.

Configuration is read from flags, FBADMIN_* environment variables,
and config.yaml in $HOME/.fbadmin or the current directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		clio.SetLevelFromEnv("FBADMIN_LOG")
		if viper.GetBool("verbose") {
			clio.SetLevelFromString("debug")
		}
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = version
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("credentials", "", "Path to the service account JSON file")
	rootCmd.PersistentFlags().String("project", "", "Firebase project ID (defaults to the credential's project)")
	rootCmd.PersistentFlags().String("emulator-host", "", "Auth emulator address, e.g. localhost:9099")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	viper.BindPFlag("credentials-file", rootCmd.PersistentFlags().Lookup("credentials"))
	viper.BindPFlag("project-id", rootCmd.PersistentFlags().Lookup("project"))
	viper.BindPFlag("emulator-host", rootCmd.PersistentFlags().Lookup("emulator-host"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(credentialsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
