package cmd

import (
	"fmt"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	showPassword bool
	showUsername bool
	showKey      string
)

func init() {
	showCmd.Flags().BoolVarP(&showPassword, "password", "p", false, "print only the password")
	showCmd.Flags().BoolVarP(&showUsername, "username", "u", false, "print only the username")
	showCmd.Flags().StringVarP(&showKey, "key", "k", "", "print the value of a metadata key")
	showCmd.MarkFlagsMutuallyExclusive("password", "username", "key")
}

func resetShowCommandState() {
	showPassword = false
	showUsername = false
	showKey = ""
}

// showOptions maps the flags of the show command to workflow options.
func showOptions(path string) workflows.ShowOptions {
	opts := workflows.ShowOptions{Path: path, Field: workflows.ShowAll}
	switch {
	case showPassword:
		opts.Field = workflows.ShowPassword
	case showUsername:
		opts.Field = workflows.ShowUsername
	case showKey != "":
		opts.Field = workflows.ShowKey
		opts.Key = showKey
	}
	return opts
}

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Decrypts a password and prints it",
	Long: `Decrypts a password file and prints its content to stdout.

Without flags the whole file is printed, metadata included.

Examples:
  # Print everything
  passkeep show email/work

  # Print only the password
  passkeep show email/work --password

  # Print a metadata value, matched case-insensitively
  passkeep show email/work --key url`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := showOptions(args[0])
		Logger.Debugf("Show %s with field=%d key=%q", opts.Path, opts.Field, opts.Key)

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		result, err := workflows.Show(cmd.Context(), session, opts)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not show "+args[0], err))
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.EnsureNewline(result.Value))
		return nil
	},
}
