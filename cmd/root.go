package cmd

import (
	"context"
	"os"
	"os/signal"

	logger "github.com/PolarWolf314/passkeep/internal/logging"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	debug      bool
	configPath string
	assumeYes  bool
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "passkeep",
		Short: "passkeep - a command line companion for gpg password stores",
		Long: `passkeep reads and writes a password store of gpg-encrypted files, one
password per file, encrypted for the recipients listed in .gpg-id files.

Features:
  - Show passwords, single metadata keys or usernames
  - Insert new passwords for the right recipients
  - Edit passwords in your editor and generate new ones
  - Re-encrypt the store after .gpg-id files change

Run 'passkeep help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every question")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/passkeep/config.toml)")

	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(insertCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(reencryptCmd)
	RootCmd.AddCommand(recipientsCmd)
	RootCmd.AddCommand(signPolicyCmd)
	RootCmd.AddCommand(agentCmd)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

// openSession opens the password store with the flags of the current
// invocation.
func openSession(ctx context.Context) (*workflows.Session, error) {
	return workflows.Open(ctx, workflows.SessionOptions{
		ConfigPath: configPath,
		Log:        Logger,
	})
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	assumeYes = false
	resetShowCommandState()
	resetInsertCommandState()
	resetReencryptCommandState()
	resetConfigCommandState()
	resetSignCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
