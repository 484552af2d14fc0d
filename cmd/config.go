package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/passkeep/internal/configs"
	"github.com/PolarWolf314/passkeep/internal/ui"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration file")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func resetConfigCommandState() {
	configInitForce = false
}

// resolveConfigPath returns the --config path or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return configs.ConfigPath()
}

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage passkeep configuration",
	Long: `Provides commands for creating and inspecting the configuration file.

Examples:
  # Write the default configuration
  passkeep config init

  # Print the configuration passkeep uses
  passkeep config show`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to determine the configuration path: %v", err)
		}
		Logger.Debugf("Configuration path: %s", path)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warning.Sprint("⚠")+" A configuration file already exists at "+ui.Path.Sprint(path))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("→")+" Use "+ui.Flag.Sprint("--force")+" to overwrite it")
			return nil
		}

		if err := configs.Save(path, configs.Default()); err != nil {
			return Logger.ErrorfAndReturn("Failed to write %s: %v", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Configuration written to "+ui.Path.Sprint(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Displays the effective configuration",
	Long: `Displays the configuration passkeep uses: the configuration file merged
over the defaults, followed by the resolved password store location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to determine the configuration path: %v", err)
		}

		config, err := configs.Load(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage("Could not load "+path, err))
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# "+path)
		if err := toml.NewEncoder(out).Encode(config); err != nil {
			return Logger.ErrorfAndReturn("Failed to encode configuration: %v", err)
		}

		location, err := config.StoreLocation(configs.LoadFromEnvironment())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve the password store location: %v", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "# password store: "+location)
		return nil
	},
}
