package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/utils"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	insertMetadata string
	insertGenerate bool
	insertLength   int
)

func init() {
	insertCmd.Flags().StringVarP(&insertMetadata, "metadata", "m", "", "metadata stored below the password, e.g. \"username: alice\"")
	insertCmd.Flags().BoolVarP(&insertGenerate, "generate", "g", false, "generate a random password instead of reading one")
	insertCmd.Flags().IntVarP(&insertLength, "length", "l", 0, "length of a generated password (default from the configuration)")
}

func resetInsertCommandState() {
	insertMetadata = ""
	insertGenerate = false
	insertLength = 0
}

// readNewSecret reads the password from piped stdin, or asks for it twice on
// a terminal. Piped input may carry metadata on the lines after the password.
func readNewSecret() (secret, metadata string, err error) {
	if !utils.IsTerminal() {
		data, err := utils.ReadPiped(os.Stdin)
		if err != nil {
			return "", "", err
		}
		secret, metadata = utils.SplitSecret(data)
		return secret, metadata, nil
	}

	secret, err = utils.ReadSecret("Enter password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := utils.ReadSecret("Retype password: ")
	if err != nil {
		return "", "", err
	}
	if secret != confirm {
		return "", "", errors.New("the passwords do not match")
	}
	return secret, "", nil
}

var insertCmd = &cobra.Command{
	Use:   "insert <path>",
	Short: "Encrypts a new password into the store",
	Long: `Encrypts a new password for the recipients of its directory's .gpg-id file.

The password is read from the terminal, or from stdin when it is piped. Piped
input may carry metadata on the lines after the password. An existing password
is never overwritten.

Examples:
  # Type the password
  passkeep insert email/work

  # Pipe a password with metadata
  printf 'hunter2\nusername: alice\n' | passkeep insert email/work

  # Generate a 32 character password
  passkeep insert email/work --generate --length 32`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting insert command for %s", args[0])

		if insertLength != 0 && !insertGenerate {
			return Logger.ErrorfAndReturn("--length can only be used with --generate")
		}
		if insertLength < 0 {
			return Logger.ErrorfAndReturn("--length must be positive")
		}

		var secret, metadata string
		if !insertGenerate {
			var err error
			if secret, metadata, err = readNewSecret(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not read the password", err))
				return err
			}
		}
		if secret == "" && !insertGenerate {
			err := errors.New("the password is empty")
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not read the password", err))
			return err
		}
		if insertMetadata != "" {
			if metadata != "" {
				metadata += "\n"
			}
			metadata += insertMetadata
		}

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		spinner, cleanup := startSpinner("Encrypting " + args[0] + "...")
		defer cleanup()

		result, err := workflows.Insert(cmd.Context(), session, workflows.InsertOptions{
			Path:     args[0],
			Secret:   secret,
			Metadata: metadata,
			Generate: insertGenerate,
			Length:   insertLength,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage("Could not insert "+ui.Path.Sprint(args[0]), err)
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Inserted " + ui.Path.Sprint(result.Path) + "\n" +
			ui.Info.Sprint("→") + " Encrypted for " + ui.KeyID.Join(result.Recipients)
		if result.Generated != "" {
			spinner.FinalMSG += "\nGenerated password: " + ui.Highlight.Sprint(result.Generated)
		}
		return nil
	},
}
