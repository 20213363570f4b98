package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/firebase-admin-check/internal/apperr"
	"github.com/blackwell-systems/firebase-admin-check/internal/config"
	"github.com/blackwell-systems/firebase-admin-check/internal/credential"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Inspect the service account credential",
}

var credentialsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and parse the credential file",
	Long:  `Load the configured service account file without contacting Firebase.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cred, err := credential.Load(cmd.Context(), cfg.CredentialsFile)
		if err != nil {
			apperr.Report(cmd.ErrOrStderr(), err)
			return fmt.Errorf("credential check failed: %s", apperr.KindOf(err))
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Credential loaded from %s\n", cred.Path)
		fmt.Fprintf(out, "  type:          %s\n", orNone(cred.Type))
		fmt.Fprintf(out, "  project:       %s\n", orNone(cred.ProjectID))
		fmt.Fprintf(out, "  client email:  %s\n", orNone(cred.ClientEmail))

		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	credentialsCmd.AddCommand(credentialsCheckCmd)
}
