package cmd

import (
	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Starts the gpg agent ahead of the first decryption",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("Could not open the password store: %v", err)
		}

		spinner, cleanup := startSpinner("Starting gpg agent...")
		defer cleanup()

		if err := workflows.StartAgent(cmd.Context(), session); err != nil {
			spinner.FinalMSG = failureMessage("Could not start the gpg agent", err)
			return err
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " gpg agent is running"
		return nil
	},
}
