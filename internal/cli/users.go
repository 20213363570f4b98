package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/firebase-admin-check/internal/admin"
	"github.com/blackwell-systems/firebase-admin-check/internal/config"
	"github.com/blackwell-systems/firebase-admin-check/internal/emulator"
	"github.com/blackwell-systems/firebase-admin-check/internal/probe"
	"github.com/blackwell-systems/firebase-admin-check/internal/snapshot"
	"github.com/blackwell-systems/firebase-admin-check/internal/users"
)

// newSource builds the Firebase-backed source; tests replace it.
var newSource admin.Factory = admin.NewFirebaseSource

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect Authentication users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the first page of users",
	Long: `Initialize the Firebase Admin SDK from the configured service account
and print one page of Authentication users (10 by default).

Failures are reported on stderr and do not change the exit status
unless --fail-on-error is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pageToken, _ := cmd.Flags().GetString("page-token")
		exportPath, _ := cmd.Flags().GetString("export")
		failOnError, _ := cmd.Flags().GetBool("fail-on-error")

		cfg, err := config.Load()
		var format users.Format
		if err == nil {
			format, err = users.ParseFormat(cfg.Output)
		}
		if err != nil {
			res := probe.Abort(cmd.OutOrStdout(), cmd.ErrOrStderr(), "config.Load", err)
			return listingError(res, failOnError)
		}

		if cfg.EmulatorHost != "" {
			if st := emulator.Check(cmd.Context(), cfg.EmulatorHost); st != emulator.StatusUp {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ Auth emulator at %s is %s\n", cfg.EmulatorHost, st)
			}
		}

		initializer := admin.NewInitializer(newSource, admin.Options{
			ProjectID:    cfg.ProjectID,
			EmulatorHost: cfg.EmulatorHost,
		})

		res := probe.New(initializer, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.Context(), probe.Options{
			CredentialsFile: cfg.CredentialsFile,
			PageSize:        cfg.PageSize,
			PageToken:       pageToken,
			Format:          format,
			ExportPath:      exportPath,
		})

		return listingError(res, failOnError)
	},
}

func listingError(res *probe.Result, failOnError bool) error {
	if res.Err != nil && failOnError {
		return fmt.Errorf("user listing failed: %s", res.Err.Kind)
	}
	return nil
}

var usersShowCmd = &cobra.Command{
	Use:   "show <snapshot-file>",
	Short: "Print users from a saved snapshot",
	Long:  `Print a page saved with 'fbadmin users list --export <file>'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		format, err := users.ParseFormat(cfg.Output)
		if err != nil {
			return err
		}

		snap, err := snapshot.Load(args[0])
		if err != nil {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ Failed to load snapshot: %v\n", err)
			return err
		}

		project := snap.ProjectID
		if project == "" {
			project = "(unknown project)"
		}
		color.New(color.FgCyan).Fprintf(cmd.ErrOrStderr(), "Snapshot of %s captured %s\n",
			project, snap.CapturedAt.Format("2006-01-02 15:04:05 MST"))

		return users.Write(cmd.OutOrStdout(), snap.Page(), format)
	},
}

func init() {
	usersCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|json|yaml|table)")
	viper.BindPFlag("output", usersCmd.PersistentFlags().Lookup("output"))

	usersListCmd.Flags().Int("page-size", config.DefaultPageSize, "Number of users to request")
	usersListCmd.Flags().String("page-token", "", "Continuation token from a previous page")
	usersListCmd.Flags().String("export", "", "Write the listed page to a .json or .yaml snapshot")
	usersListCmd.Flags().Bool("fail-on-error", false, "Exit non-zero when listing fails")
	viper.BindPFlag("page-size", usersListCmd.Flags().Lookup("page-size"))

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersShowCmd)
}
