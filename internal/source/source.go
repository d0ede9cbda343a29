// Package source turns a file on disk into SRT bytes ready for the caption
// parser. Plain SRT is read as is, other subtitle formats are converted and
// media containers have an embedded subtitle stream extracted.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/media"
)

type Format string

const (
	FormatSRT    Format = "srt"
	FormatWebVTT Format = "vtt"
	FormatSSA    Format = "ssa"
	FormatTTML   Format = "ttml"
	FormatMedia  Format = "media"
)

type Options struct {
	// subtitle stream to extract from media containers
	Stream int
}

// detects the source format from the file extension; unknown extensions
// are treated as SRT
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt", ".webvtt":
		return FormatWebVTT
	case ".ass", ".ssa":
		return FormatSSA
	case ".ttml", ".dfxp", ".xml":
		return FormatTTML
	}
	if media.IsVideoFile(path) {
		return FormatMedia
	}
	return FormatSRT
}

// Load returns the SRT text for path. "-" reads standard input. Every
// failure wraps caption.ErrUnreadableSource.
func Load(ctx context.Context, path string, opts Options) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, unreadable(path, err)
		}
		return data, nil
	}

	format := DetectFormat(path)
	if format == FormatMedia {
		data, err := media.ExtractSubtitles(ctx, path, opts.Stream)
		if err != nil {
			return nil, unreadable(path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	if format == FormatSRT {
		return data, nil
	}

	srt, err := Convert(bytes.NewReader(data), format)
	if err != nil {
		return nil, unreadable(path, err)
	}
	return srt, nil
}

// LoadTrack loads and parses path in one step.
func LoadTrack(
	ctx context.Context,
	path string,
	opts Options,
	parser caption.Parser,
) (*caption.Track, error) {
	data, err := Load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return parser.ParseBytes(data)
}

// Convert reads a WebVTT, SSA/ASS or TTML document and renders it as SRT.
func Convert(r io.Reader, format Format) ([]byte, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch format {
	case FormatWebVTT:
		subs, err = astisub.ReadFromWebVTT(r)
	case FormatSSA:
		subs, err = astisub.ReadFromSSA(r)
	case FormatTTML:
		subs, err = astisub.ReadFromTTML(r)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s subtitles: %w", format, err)
	}

	if len(subs.Items) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := subs.WriteToSRT(&buf); err != nil {
		return nil, fmt.Errorf("failed to convert %s to SRT: %w", format, err)
	}
	return buf.Bytes(), nil
}

func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", caption.ErrUnreadableSource, path, err)
}
