package caption

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	track := NewTrack([]Caption{
		{Sequence: 9, Start: 5500 * time.Millisecond, End: 8200 * time.Millisecond, Text: "Second\nTwo lines"},
		{Sequence: 4, Start: time.Second, End: 4 * time.Second, Text: "First"},
		{Sequence: 12, Start: time.Hour + 2*time.Minute + 3*time.Second, End: time.Hour + 2*time.Minute + 4*time.Second},
	})

	want := "1\n00:00:01,000 --> 00:00:04,000\nFirst\n\n" +
		"2\n00:00:05,500 --> 00:00:08,200\nSecond\nTwo lines\n\n" +
		"3\n01:02:03,000 --> 01:02:04,000\n\n"

	if got := string(Format(track)); got != want {
		t.Errorf("Format mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteFileReparses(t *testing.T) {
	original := NewTrack([]Caption{
		{Sequence: 1, Start: 1234 * time.Millisecond, End: 2500 * time.Millisecond, Text: "Hello"},
		{Sequence: 2, Start: 3 * time.Second, End: 3 * time.Second},
	})

	path := filepath.Join(t.TempDir(), "nested", "out.srt")
	if err := WriteFile(original, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	parsed, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("written file does not parse: %v", err)
	}
	if parsed.Len() != original.Len() {
		t.Fatalf("expected %d captions, got %d", original.Len(), parsed.Len())
	}
	for i := 0; i < parsed.Len(); i++ {
		if !parsed.At(i).Equal(original.At(i)) {
			t.Errorf("caption %d: got %+v, want %+v", i, parsed.At(i), original.At(i))
		}
	}
}

func TestFormatTimestampClampsNegative(t *testing.T) {
	if got := FormatTimestamp(-time.Second); got != "00:00:00,000" {
		t.Errorf("expected zero timestamp, got %s", got)
	}
}
