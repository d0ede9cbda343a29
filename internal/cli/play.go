package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/player"
)

var playCmd = &cobra.Command{
	Use:   "play [subtitle_file]",
	Short: "Play subtitles in the terminal",
	Long: `Play a subtitle file against a simulated clock in the terminal.

The caption on screen follows the clock; the list below it highlights the
active caption. Use space to pause, left/right (or h/l) to jump to the
previous or next caption, [ and ] to skip five seconds and q to quit.

Examples:
  cuetrack play movie.srt
  cuetrack play movie.srt --start 00:12:30
  cuetrack play movie.mkv --stream 1 --tick 100ms`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().
		String("start", "0", "Start time (HH:MM:SS,mmm, seconds or duration)")
	playCmd.Flags().
		Duration("tick", 0, "Clock update interval (default from config, 50ms)")
	playCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index when reading a video file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]

	startStr, _ := cmd.Flags().GetString("start")
	tick, _ := cmd.Flags().GetDuration("tick")
	stream, _ := cmd.Flags().GetInt("stream")

	start, err := parseClock(startStr)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("tick") {
		tick = cfg.Playback.Tick
	}
	if tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", tick)
	}

	ix, err := loadIndex(cmd.Context(), path, stream)
	if err != nil {
		return err
	}
	if ix.Len() == 0 {
		return fmt.Errorf("subtitle file contains no captions")
	}

	logger.Debugw("Starting playback",
		"path", path,
		"captions", ix.Len(),
		"start", start,
		"tick", tick,
	)

	return player.Run(ix, player.Options{
		Start:      start,
		Tick:       tick,
		ListHeight: cfg.Playback.ListHeight,
		Title:      filepath.Base(path),
	})
}
