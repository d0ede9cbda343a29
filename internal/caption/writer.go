package caption

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Format renders the track as SRT, renumbering cues from 1.
func Format(t *Track) []byte {
	var buf bytes.Buffer
	for i, c := range t.Captions() {
		// index (1-based)
		fmt.Fprintf(&buf, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(&buf, "%s --> %s\n",
			FormatTimestamp(c.Start),
			FormatTimestamp(c.End))

		if c.Text != "" {
			buf.WriteString(c.Text)
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// writes the track to an SRT file, creating parent directories
func WriteFile(t *Track, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, Format(t), 0644); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	return nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm; negative values clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60
	millis := int64(d/time.Millisecond) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
