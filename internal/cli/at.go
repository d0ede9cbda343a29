package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/timeline"
)

var atCmd = &cobra.Command{
	Use:   "at [subtitle_file] [time...]",
	Short: "Show the caption on screen at a given time",
	Long: `Look up the caption active at one or more playback times, along with
the captions a previous/next key press would jump to.

Times may be written as HH:MM:SS,mmm, MM:SS, seconds (12.5) or a
duration (1m30s).

Examples:
  cuetrack at movie.srt 00:01:23,500
  cuetrack at movie.srt 83.5 90 1m45s
  cuetrack at movie.srt 10 --previous-guard 0`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)

	atCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index when reading a video file")
}

func runAt(cmd *cobra.Command, args []string) error {
	path := args[0]
	stream, _ := cmd.Flags().GetInt("stream")

	times := make([]time.Duration, 0, len(args)-1)
	for _, arg := range args[1:] {
		t, err := parseClock(arg)
		if err != nil {
			return err
		}
		times = append(times, t)
	}

	ix, err := loadIndex(cmd.Context(), path, stream)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, t := range times {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, caption.FormatTimestamp(t))
		printLookup(out, ix, t)
	}
	return nil
}

func printLookup(out io.Writer, ix *timeline.Index, t time.Duration) {
	lookups := []struct {
		label string
		fn    func(time.Duration) (caption.Caption, bool)
	}{
		{"active", ix.ActiveAt},
		{"previous", ix.Previous},
		{"next", ix.Next},
	}

	for _, l := range lookups {
		c, ok := l.fn(t)
		if !ok {
			fmt.Fprintf(out, "  %-8s  -\n", l.label)
			continue
		}
		pos, _ := ix.IndexOf(c)
		fmt.Fprintf(out, "  %-8s  %d: %s\n", l.label, pos+1, describe(c))
	}
}
