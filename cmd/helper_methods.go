package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	"github.com/PolarWolf314/passkeep/internal/ui"

	"github.com/briandowns/spinner"
	"github.com/cockroachdb/errors"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// failureMessage turns an error into the text shown to the user, with a hint
// where one helps.
func failureMessage(action string, err error) string {
	msg := ui.Error.Sprint("✗") + " " + action + "\n" + ui.Error.Sprint("Error: ") + err.Error()

	var hint string
	switch {
	case errors.Is(err, kerrors.ErrToolNotFound):
		hint = "Install gnupg or set " + ui.Code.Sprint("gpg.executable") + " in your configuration"
	case errors.Is(err, kerrors.ErrPasswordNotFound):
		hint = "Run " + ui.Code.Sprint("passkeep list") + " to see the stored passwords"
	case errors.Is(err, kerrors.ErrPasswordExists):
		hint = "Choose another name or remove the existing file first"
	case errors.Is(err, kerrors.ErrStoreNotFound):
		hint = "Set " + ui.Code.Sprint("password_store.location") + " or PASSWORD_STORE_DIR to your password store"
	case errors.Is(err, kerrors.ErrInvalidConfig), errors.Is(err, kerrors.ErrPasswordParse):
		hint = "Check your configuration file, or run " + ui.Code.Sprint("passkeep config show")
	case errors.Is(err, kerrors.ErrKeyNotFound):
		hint = "Run " + ui.Code.Sprint("passkeep show <path>") + " to see the keys the password has"
	case errors.Is(err, kerrors.ErrNoRecipients):
		hint = "Import the keys named in " + ui.Path.Sprint(".gpg-id") + " into your keyring"
	case errors.Is(err, kerrors.ErrNoCharacterGroups):
		hint = "Enable a character group in " + ui.Code.Sprint("password_store.password_generation")
	case errors.Is(err, kerrors.ErrProcessTimeout):
		hint = "gpg may be waiting for a passphrase; run " + ui.Code.Sprint("passkeep agent") + " first"
	}
	if hint != "" {
		msg += "\n" + ui.Info.Sprint("→") + " " + hint
	}
	return msg
}
