package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/cuetrack/internal/ffmpeg"
)

// subtitle stream inside a media container
type SubtitleStream struct {
	Index    int // position among the subtitle streams (0:s:N)
	Codec    string
	Language string
	Title    string
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string            `json:"codec_name"`
		CodecType string            `json:"codec_type"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

// duration of an audio/video file
func Duration(ctx context.Context, path string) (time.Duration, error) {
	out, err := probe(ctx, path, "-show_format")
	if err != nil {
		return 0, err
	}
	return parseDuration(out)
}

// subtitle streams of a media file, in container order
func SubtitleStreams(ctx context.Context, path string) ([]SubtitleStream, error) {
	out, err := probe(ctx, path, "-show_streams", "-select_streams", "s")
	if err != nil {
		return nil, err
	}
	return parseSubtitleStreams(out)
}

// ExtractSubtitles converts subtitle stream N of a media file to SRT and
// returns the SRT bytes.
func ExtractSubtitles(
	ctx context.Context,
	path string,
	stream int,
) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("media file not found: %s", path)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	cmd := extractStream(path, stream).
		SetFfmpegPath(ffmpegPath).
		Compile()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := runContext(ctx, cmd); err != nil {
		return nil, fmt.Errorf(
			"ffmpeg subtitle extraction failed: %w (%s)",
			err,
			lastLine(stderr.String()),
		)
	}

	return stdout.Bytes(), nil
}

func extractStream(path string, stream int) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", stream),
		"c:s": "srt",
		"f":   "srt",
	}
	return ffmpeg.Input(path).
		Output("pipe:", kwargs).
		OverWriteOutput()
}

func probe(ctx context.Context, path string, args ...string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	full := append([]string{"-v", "quiet", "-print_format", "json"}, args...)
	full = append(full, path)

	cmd := exec.CommandContext(ctx, ffprobePath, full...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return out.Bytes(), nil
}

func parseDuration(data []byte) (time.Duration, error) {
	var p ffprobeOutput
	if err := json.Unmarshal(data, &p); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(p.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

func parseSubtitleStreams(data []byte) ([]SubtitleStream, error) {
	var p ffprobeOutput
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var streams []SubtitleStream
	for _, s := range p.Streams {
		if s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, SubtitleStream{
			Index:    len(streams),
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
		})
	}
	return streams, nil
}

// runs cmd, killing it if ctx is done first
func runContext(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".ts":   true,
	}
	return videoExts[ext]
}
