package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/source"
	"github.com/mgpai22/cuetrack/internal/timeline"
)

// parser that reports skipped blocks in the debug log
func captionParser() caption.Parser {
	return caption.Parser{
		Warn: func(w caption.Warning) {
			logger.Debugw("Skipped caption block",
				"line", w.Line,
				"reason", w.Reason.String(),
				"text", w.Text,
			)
		},
	}
}

func loadTrack(
	ctx context.Context,
	path string,
	stream int,
) (*caption.Track, error) {
	track, err := source.LoadTrack(
		ctx,
		path,
		source.Options{Stream: stream},
		captionParser(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtitles: %w", err)
	}

	logger.Debugw("Parsed subtitles",
		"path", path,
		"format", source.DetectFormat(path),
		"captions", track.Len(),
	)
	return track, nil
}

func loadIndex(
	ctx context.Context,
	path string,
	stream int,
) (*timeline.Index, error) {
	track, err := loadTrack(ctx, path, stream)
	if err != nil {
		return nil, err
	}
	ix := timeline.New(cfg.Guards())
	ix.Load(track)
	return ix, nil
}

// one-line rendering of a caption for terminal output
func describe(c caption.Caption) string {
	return fmt.Sprintf("#%d [%s --> %s] %s",
		c.Sequence,
		caption.FormatTimestamp(c.Start),
		caption.FormatTimestamp(c.End),
		strings.ReplaceAll(c.Text, "\n", " / "),
	)
}
