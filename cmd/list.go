package cmd

import (
	"fmt"

	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [subdir]",
	Aliases: []string{"ls"},
	Short:   "Lists the passwords in the store",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var subtree string
		if len(args) == 1 {
			subtree = args[0]
		}

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		paths, err := workflows.List(session, subtree)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not list passwords", err))
			return err
		}
		for _, path := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}
