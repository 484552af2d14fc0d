package cmd

import (
	"bytes"
	"context"
	"testing"

	logger "github.com/PolarWolf314/passkeep/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCommand executes the root command with args and returns what it wrote
// to stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	resetCommandFlags(RootCmd)
	ResetGlobalState()
	t.Cleanup(func() {
		resetCommandFlags(RootCmd)
		ResetGlobalState()
	})

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	SetLogger(logger.Logger{Out: &stderr, Err: &stderr})

	err := RootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetCommandFlags restores every flag of c and its children to its default
// so that one test's flags do not leak into the next.
func resetCommandFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetCommandFlags(child)
	}
}
