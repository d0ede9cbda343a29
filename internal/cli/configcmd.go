package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/config"
)

const defaultConfigFile = "cuetrack.yaml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cuetrack configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the default settings",
	Long: `Write the default configuration as YAML so it can be edited.

Without a path the file is written to ./cuetrack.yaml, which cuetrack
picks up automatically. An existing file is kept unless --force is set.

Examples:
  cuetrack config init
  cuetrack config init ~/.config/cuetrack/config.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.SaveConfigFile(config.DefaultConfig(), path); err != nil {
		return err
	}

	logger.Debugw("Wrote default configuration", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
