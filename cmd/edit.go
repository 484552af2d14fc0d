package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/utils"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Edits a password in your editor",
	Long: `Decrypts the whole password file, opens it in $VISUAL or $EDITOR and
encrypts the saved content back for the recipients of its .gpg-id file.

When stdin is not a terminal the new content is read from stdin instead.

Examples:
  # Edit in your editor
  passkeep edit email/work

  # Replace the content from a pipe
  printf 'hunter3\nusername: alice\n' | passkeep edit email/work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command for %s", args[0])

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		edit := func(current string) (string, error) {
			if !utils.IsTerminal() {
				return utils.ReadPiped(os.Stdin)
			}
			editor := utils.EditorCommand()
			Logger.Debugf("Opening %s with %s", args[0], editor)
			return utils.EditText(cmd.Context(), editor, current)
		}

		result, err := workflows.Edit(cmd.Context(), session, workflows.EditOptions{Path: args[0], Edit: edit})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not edit "+ui.Path.Sprint(args[0]), err))
			return err
		}

		if !result.Changed {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("→")+" "+ui.Path.Sprint(result.Path)+" is unchanged")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Saved "+ui.Path.Sprint(result.Path))
		return nil
	},
}
