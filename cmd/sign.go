package cmd

import (
	"fmt"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var signKeyID string

func init() {
	signPolicyCmd.Flags().StringVarP(&signKeyID, "local-user", "u", "", "key to sign with (default: first key of PASSWORD_STORE_SIGNING_KEY)")
}

func resetSignCommandState() {
	signKeyID = ""
}

var signPolicyCmd = &cobra.Command{
	Use:   "sign-policy [subdir]",
	Short: "Signs a .gpg-id file with a detached signature",
	Long: `Writes a detached, ASCII-armored signature of a .gpg-id file to .gpg-id.sig
next to it, so that changes to the recipient list can be verified.

Examples:
  # Sign the store's top-level .gpg-id with PASSWORD_STORE_SIGNING_KEY
  passkeep sign-policy

  # Sign a directory's .gpg-id with a given key
  passkeep sign-policy work --local-user 0x1140265C5D4B56E1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.SignPolicyOptions{KeyID: signKeyID}
		if len(args) == 1 {
			opts.Dir = args[0]
		}

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		spinner, cleanup := startSpinner("Signing .gpg-id...")
		defer cleanup()

		result, err := workflows.SignPolicy(cmd.Context(), session, opts)
		if err != nil {
			spinner.FinalMSG = failureMessage("Could not sign the .gpg-id file", err)
			return err
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Signed " + ui.Path.Sprint(result.PolicyPath) +
			" with " + ui.KeyID.Sprint(result.KeyID) + "\n" +
			ui.Info.Sprint("→") + " Signature written to " + ui.Path.Sprint(result.SignaturePath)
		return nil
	},
}
