package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/config"
	"github.com/mgpai22/cuetrack/internal/logging"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cuetrack",
	Short: "Inspect, navigate and play SRT subtitles",
	Long: `Cuetrack parses SRT subtitle files into a timeline and answers which
caption is on screen at any moment of playback.

It can inspect and validate subtitle files, look up the caption at a
timestamp, play subtitles in the terminal, extract embedded subtitle
streams from video files and translate captions using AI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := applyFlagOverrides(cmd, loaded); err != nil {
			return err
		}
		cfg = loaded
		logger = logging.NewLogger(verbose || cfg.Verbose)
		return nil
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./cuetrack.yaml or user config dir)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		Duration("previous-guard", 0, "Offset before the current time that previous-caption lookups skip (default 500ms)")
	rootCmd.PersistentFlags().
		Duration("next-guard", 0, "Offset after the current time that next-caption lookups skip (default 100ms)")
}

// flags given on the command line win over the config file
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("previous-guard") {
		c.Navigation.PreviousGuard, _ = flags.GetDuration("previous-guard")
	}
	if flags.Changed("next-guard") {
		c.Navigation.NextGuard, _ = flags.GetDuration("next-guard")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
