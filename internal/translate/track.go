package translate

import (
	"fmt"
	"strings"

	"github.com/mgpai22/cuetrack/internal/caption"
)

// Items lists the captions of a track that carry text. Index is the
// caption's position in the track.
func Items(track *caption.Track) []TranslationItem {
	var items []TranslationItem
	for i, c := range track.Captions() {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: c.Text})
	}
	return items
}

// Apply returns a new track with the translated text put in place. Timing
// and sequence numbers are kept. With overlay set the translation is added
// below the original text instead of replacing it.
func Apply(
	track *caption.Track,
	results []TranslationResult,
	overlay bool,
) (*caption.Track, error) {
	captions := track.Captions()

	for _, r := range results {
		if r.Index < 0 || r.Index >= len(captions) {
			return nil, fmt.Errorf(
				"translation index %d out of range (track has %d captions)",
				r.Index,
				len(captions),
			)
		}
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if overlay && captions[r.Index].Text != "" {
			text = captions[r.Index].Text + "\n" + text
		}
		captions[r.Index].Text = text
	}

	return caption.NewTrack(captions), nil
}
