package caption

import (
	"sort"
	"strings"
	"time"
)

// represents single subtitle cue
type Caption struct {
	Sequence int
	Start    time.Duration
	End      time.Duration
	Text     string

	// set by a timeline when the caption is handed out from a loaded track
	stamp Stamp
}

// identifies where a caption came from: the load generation of the
// timeline that returned it and its position in that track.
type Stamp struct {
	Generation uint64
	Position   int
}

func (c Caption) Duration() time.Duration {
	return c.End - c.Start
}

// text split on line breaks, nil for an empty body
func (c Caption) Lines() []string {
	if c.Text == "" {
		return nil
	}
	return strings.Split(c.Text, "\n")
}

// reports whether both captions carry the same sequence, timing and text
func (c Caption) Equal(other Caption) bool {
	return c.Sequence == other.Sequence &&
		c.Start == other.Start &&
		c.End == other.End &&
		c.Text == other.Text
}

// Stamp returns the load stamp and whether one was set. A stamp is only a
// position hint; lookups still require the caption to equal the one stored
// there.
func (c Caption) Stamp() (Stamp, bool) {
	return c.stamp, c.stamp.Generation != 0
}

// WithStamp returns a copy of c carrying s.
func (c Caption) WithStamp(s Stamp) Caption {
	c.stamp = s
	return c
}

// Track is an immutable sequence of captions ordered by start time.
type Track struct {
	captions []Caption
}

// NewTrack copies captions and stable-sorts them by start.
func NewTrack(captions []Caption) *Track {
	sorted := make([]Caption, len(captions))
	copy(sorted, captions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return &Track{captions: sorted}
}

func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.captions)
}

func (t *Track) At(i int) Caption {
	return t.captions[i]
}

// copy of the ordered captions
func (t *Track) Captions() []Caption {
	if t == nil {
		return nil
	}
	out := make([]Caption, len(t.captions))
	copy(out, t.captions)
	return out
}
