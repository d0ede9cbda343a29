package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/media"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream from a video file",
	Long: `Extract a subtitle stream from a video container and save it as SRT.

The extracted captions are parsed before writing, so a stream that does
not produce valid SRT is reported instead of written.

Examples:
  cuetrack extract movie.mkv
  cuetrack extract movie.mkv --list
  cuetrack extract movie.mkv --stream 2 -o english.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index (0 = first subtitle stream)")
	extractCmd.Flags().
		Bool("list", false, "List the subtitle streams instead of extracting")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := cmd.Context()

	stream, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	if stream < 0 {
		return fmt.Errorf("stream must not be negative, got %d", stream)
	}

	if list {
		streams, err := media.SubtitleStreams(ctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to list subtitle streams: %w", err)
		}
		if len(streams) == 0 {
			fmt.Fprintln(out, "No subtitle streams found")
			return nil
		}
		for _, s := range streams {
			fmt.Fprintf(out, "%d: %s", s.Index, s.Codec)
			if s.Language != "" {
				fmt.Fprintf(out, " [%s]", s.Language)
			}
			if s.Title != "" {
				fmt.Fprintf(out, " %q", s.Title)
			}
			fmt.Fprintln(out)
		}
		return nil
	}

	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		if stream > 0 {
			outputPath = fmt.Sprintf("%s.%d.srt", base, stream)
		} else {
			outputPath = base + ".srt"
		}
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", stream,
		"output", outputPath,
	)

	data, err := media.ExtractSubtitles(ctx, videoPath, stream)
	if err != nil {
		return fmt.Errorf("failed to extract subtitles: %w", err)
	}

	track, err := captionParser().ParseBytes(data)
	if err != nil {
		return fmt.Errorf("extracted stream is not valid SRT: %w", err)
	}

	if err := caption.WriteFile(track, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Subtitles extracted successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Captions: %d\n", track.Len())

	return nil
}
