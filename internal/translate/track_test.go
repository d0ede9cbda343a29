package translate

import (
	"testing"
	"time"

	"github.com/mgpai22/cuetrack/internal/caption"
)

func sampleTrack() *caption.Track {
	return caption.NewTrack([]caption.Caption{
		{Sequence: 1, Start: time.Second, End: 2 * time.Second, Text: "Hello"},
		{Sequence: 2, Start: 3 * time.Second, End: 4 * time.Second},
		{Sequence: 3, Start: 5 * time.Second, End: 6 * time.Second, Text: "<i>Bye</i>"},
	})
}

func TestItemsSkipsEmptyCaptions(t *testing.T) {
	items := Items(sampleTrack())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Index != 0 || items[1].Index != 2 {
		t.Errorf("unexpected indices: %+v", items)
	}
}

func TestApply(t *testing.T) {
	results := []TranslationResult{
		{Index: 0, Text: "Hola"},
		{Index: 2, Text: "<i>Adiós</i>"},
	}

	tests := []struct {
		name    string
		overlay bool
		want    []string
	}{
		{"replace", false, []string{"Hola", "", "<i>Adiós</i>"}},
		{"overlay", true, []string{"Hello\nHola", "", "<i>Bye</i>\n<i>Adiós</i>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := sampleTrack()
			translated, err := Apply(original, results, tt.overlay)
			if err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			for i, want := range tt.want {
				got := translated.At(i)
				if got.Text != want {
					t.Errorf("caption %d: expected %q, got %q", i, want, got.Text)
				}
				if got.Start != original.At(i).Start || got.End != original.At(i).End {
					t.Errorf("caption %d: timing changed", i)
				}
			}
			if original.At(0).Text != "Hello" {
				t.Error("Apply must not modify the input track")
			}
		})
	}
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	if _, err := Apply(sampleTrack(), []TranslationResult{{Index: 3, Text: "x"}}, false); err == nil {
		t.Error("expected error for out of range index")
	}
}
