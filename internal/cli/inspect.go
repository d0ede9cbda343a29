package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/media"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Parse a subtitle file and print its captions and coverage",
	Long: `Parse a subtitle file and print a summary: caption count, covered
time, average caption duration, gaps and overlaps. The first captions are
listed after the summary.

Besides SRT, WebVTT, ASS/SSA and TTML files are converted on the fly, and
video files have their subtitle stream extracted with ffmpeg.

When --media is given the video is probed with ffprobe and the share of
its running time covered by captions is reported.

Examples:
  cuetrack inspect movie.srt
  cuetrack inspect movie.srt --media movie.mkv
  cuetrack inspect movie.mkv --stream 1 --limit 0`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		String("media", "", "Video file whose duration is used for coverage")
	inspectCmd.Flags().
		IntP("limit", "n", 20, "Number of captions to list (0 lists all)")
	inspectCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index when reading a video file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	mediaPath, _ := cmd.Flags().GetString("media")
	limit, _ := cmd.Flags().GetInt("limit")
	stream, _ := cmd.Flags().GetInt("stream")

	if limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", limit)
	}

	track, err := loadTrack(ctx, path, stream)
	if err != nil {
		return err
	}

	stats := computeStats(track)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "  Captions: %d\n", stats.Count)
	if stats.Count > 0 {
		fmt.Fprintf(out, "  Span: %s --> %s\n",
			caption.FormatTimestamp(stats.First),
			caption.FormatTimestamp(stats.Last))
		fmt.Fprintf(out, "  Covered: %s\n", stats.Covered)
		fmt.Fprintf(out, "  Average duration: %s\n", stats.Average)
		fmt.Fprintf(out, "  Gaps: %d (longest %s)\n", stats.Gaps, stats.Longest)
		fmt.Fprintf(out, "  Overlaps: %d\n", stats.Overlaps)
		if stats.Inverted > 0 {
			fmt.Fprintf(out, "  Ending before start: %d\n", stats.Inverted)
		}
	}

	if mediaPath != "" {
		duration, err := media.Duration(ctx, mediaPath)
		if err != nil {
			return fmt.Errorf("failed to probe media duration: %w", err)
		}
		logger.Debugw("Probed media", "path", mediaPath, "duration", duration)

		fmt.Fprintf(out, "  Media duration: %s\n", duration)
		fmt.Fprintf(out, "  Coverage: %.1f%%\n", stats.coverageOf(duration)*100)
	}

	captions := track.Captions()
	if limit > 0 && len(captions) > limit {
		captions = captions[:limit]
	}
	if len(captions) > 0 {
		fmt.Fprintln(out)
	}
	for _, c := range captions {
		fmt.Fprintln(out, describe(c))
	}
	if len(captions) < track.Len() {
		fmt.Fprintf(out, "... %d more\n", track.Len()-len(captions))
	}

	return nil
}
