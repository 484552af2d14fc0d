package cmd

import (
	"fmt"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/PolarWolf314/passkeep/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the passkeep and gpg versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		banner := figure.NewColorFigure("passkeep", "small", "green", true)
		fmt.Fprintln(out, banner.ColorString())
		fmt.Fprintln(out, "passkeep "+ui.Highlight.Sprint(Version))

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not locate gpg", err))
			return err
		}
		gpgVersion, err := workflows.Version(cmd.Context(), session)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not read the gpg version", err))
			return err
		}
		fmt.Fprintln(out, gpgVersion)
		return nil
	},
}
