package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/utils"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	reencryptDryRun bool

	// newPrompter asks the questions of a run. Tests replace it.
	newPrompter = utils.NewTerminalPrompter
)

func init() {
	reencryptCmd.Flags().BoolVar(&reencryptDryRun, "dry-run", false, "report drifted passwords without re-encrypting them")
}

func resetReencryptCommandState() {
	reencryptDryRun = false
}

const reencryptWarning = "The password store will now be re-encrypted. " +
	"If you have added or removed any recipients from your .gpg-id files, " +
	"your password files will be updated to match the recipients specified in those files. " +
	"Note that if your password store contains many passwords, this may take a while.\n\n" +
	"You will also need to have the keys of all recipients in your keyring, and they must be valid " +
	"(unexpired, and trusted).\n\n" +
	"Would you like to continue?"

// reencryptEvent is a message from the reconciliation goroutine. Questions
// carry a reply channel and block the run until answered.
type reencryptEvent struct {
	message string
	reply   chan bool
}

// runReencrypt runs the workflow on its own goroutine and handles its
// messages on the calling one, so that progress lines and questions reach
// the terminal in order.
func runReencrypt(ctx context.Context, session *workflows.Session, opts workflows.ReencryptOptions, printer *ui.ProgressPrinter, prompter *utils.Prompter) (*workflows.ReencryptResult, error) {
	events := make(chan reencryptEvent)

	opts.Progress = func(message string) {
		events <- reencryptEvent{message: message}
	}
	opts.Continue = func(message string) bool {
		reply := make(chan bool, 1)
		events <- reencryptEvent{message: message, reply: reply}
		return <-reply
	}

	var (
		result *workflows.ReencryptResult
		err    error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		result, err = workflows.Reencrypt(ctx, session, opts)
	}()

	for event := range events {
		if event.reply == nil {
			printer.Print(event.message)
			continue
		}
		event.reply <- prompter.Confirm(event.message)
	}
	<-done
	return result, err
}

func printReencryptSummary(out io.Writer, result *workflows.ReencryptResult) {
	verb := "Re-encrypted"
	if result.DryRun {
		verb = "Would re-encrypt"
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d, skipped %d, failed %d\n", verb, len(result.Reencrypted), len(result.Skipped), len(result.Failed))
	if len(result.Failed) > 0 {
		fmt.Fprint(out, "Failed:"+utils.FormatPaths(result.Failed))
	}
	if !result.DryRun {
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Run id "+ui.Highlight.Sprint(result.RunID))
	}
}

var reencryptCmd = &cobra.Command{
	Use:   "reencrypt [subdir]",
	Short: "Re-encrypts passwords whose recipients differ from their .gpg-id files",
	Long: `Compares the recipients each password is encrypted for with the recipients
its .gpg-id file requires, and re-encrypts the passwords that differ.

Passwords are processed one at a time. When one fails you are asked whether to
go on; without a terminal the run stops unless --yes is given.

Examples:
  # Check the whole store without changing anything
  passkeep reencrypt --dry-run

  # Re-encrypt one directory without questions
  passkeep reencrypt work --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.ReencryptOptions{DryRun: reencryptDryRun}
		if len(args) == 1 {
			opts.Subtree = args[0]
		}
		Logger.Infof("Starting reencrypt command for subtree %q (dry run: %t)", opts.Subtree, opts.DryRun)

		prompter := newPrompter(assumeYes)
		prompter.Out = cmd.ErrOrStderr()
		if !opts.DryRun && !prompter.Confirm(reencryptWarning) {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning.Sprint("Re-encryption cancelled."))
			return nil
		}

		session, err := openSession(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not open the password store", err))
			return err
		}

		out := cmd.OutOrStdout()
		result, err := runReencrypt(cmd.Context(), session, opts, ui.NewProgressPrinter(out), prompter)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not re-encrypt the password store", err))
			return err
		}

		printReencryptSummary(out, result)
		if result.Aborted {
			return fmt.Errorf("re-encryption aborted after %d failures", len(result.Failed))
		}
		return nil
	},
}
