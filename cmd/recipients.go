package cmd

import (
	"fmt"
	"io"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var recipientsCmd = &cobra.Command{
	Use:   "recipients <path>",
	Short: "Compares a password's recipients with its .gpg-id policy",
	Long: `Lists the key ids a password is encrypted for next to the recipients its
.gpg-id file (or PASSWORD_STORE_KEY) requires. Nothing is decrypted.

Use 'passkeep reencrypt' to bring drifted passwords back in line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		result, err := workflows.Recipients(cmd.Context(), session, args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not inspect "+args[0], err))
			return err
		}

		printRecipients(cmd.OutOrStdout(), result)
		return nil
	},
}

func printRecipients(out io.Writer, result *workflows.RecipientsResult) {
	fmt.Fprintln(out, ui.Path.Sprint(result.Path))
	fmt.Fprintln(out, "  Encrypted for: "+ui.KeyID.Join(result.Embedded))
	fmt.Fprintln(out, "  Policy:        "+ui.Highlight.Join(result.Policy))
	fmt.Fprintln(out, "  Required:      "+ui.KeyID.Join(result.Required))
	if len(result.Unresolved) > 0 {
		fmt.Fprintln(out, "  "+ui.Warning.Sprint("Unresolved:")+"    "+ui.Highlight.Join(result.Unresolved))
	}

	if result.InSync() {
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Recipients match the policy")
		return
	}
	if len(result.Added) > 0 {
		fmt.Fprintln(out, ui.Warning.Sprint("+")+" Missing: "+ui.KeyID.Join(result.Added))
	}
	if len(result.Removed) > 0 {
		fmt.Fprintln(out, ui.Warning.Sprint("-")+" Extra:   "+ui.KeyID.Join(result.Removed))
	}
	fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("passkeep reencrypt")+" to fix the drift")
}
