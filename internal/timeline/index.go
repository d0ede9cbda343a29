// Package timeline answers which caption is active at a playback time and
// which caption comes before or after it. The index holds no clock; the host
// passes the current media time on every call.
package timeline

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/mgpai22/cuetrack/internal/caption"
)

const (
	// DefaultPreviousGuard keeps Previous from returning the caption that
	// just started.
	DefaultPreviousGuard = 500 * time.Millisecond

	// DefaultNextGuard keeps Next from returning a caption starting right now.
	DefaultNextGuard = 100 * time.Millisecond
)

// Guards bias directional navigation away from the current position.
type Guards struct {
	Previous time.Duration
	Next     time.Duration
}

func DefaultGuards() Guards {
	return Guards{
		Previous: DefaultPreviousGuard,
		Next:     DefaultNextGuard,
	}
}

// Index wraps at most one caption track. Queries never block and always see
// a complete track: Load builds a new snapshot and swaps it in atomically.
type Index struct {
	guards  Guards
	current atomic.Pointer[snapshot]
}

// shared by every Index so a stamp never matches a load of another index
var generations atomic.Uint64

// immutable view of one loaded track
type snapshot struct {
	generation uint64
	track      *caption.Track
	captions   []caption.Caption
	starts     []time.Duration
	// maxEnds[i] is the latest End among captions[0..i]
	maxEnds []time.Duration
}

func New(guards Guards) *Index {
	return &Index{guards: guards}
}

func (ix *Index) Guards() Guards {
	return ix.guards
}

// Load replaces the current track. Captions obtained from an earlier load
// no longer resolve through IndexOf.
func (ix *Index) Load(track *caption.Track) {
	if track == nil {
		track = caption.NewTrack(nil)
	}
	gen := generations.Add(1)

	n := track.Len()
	snap := &snapshot{
		generation: gen,
		track:      track,
		captions:   make([]caption.Caption, n),
		starts:     make([]time.Duration, n),
		maxEnds:    make([]time.Duration, n),
	}
	for i := 0; i < n; i++ {
		c := track.At(i).WithStamp(caption.Stamp{Generation: gen, Position: i})
		snap.captions[i] = c
		snap.starts[i] = c.Start
		snap.maxEnds[i] = c.End
		if i > 0 && snap.maxEnds[i-1] > c.End {
			snap.maxEnds[i] = snap.maxEnds[i-1]
		}
	}

	ix.current.Store(snap)
}

// Clear drops the loaded track; every query returns nothing afterwards.
func (ix *Index) Clear() {
	ix.current.Store(nil)
}

func (ix *Index) Loaded() bool {
	return ix.current.Load() != nil
}

// Track returns the loaded track, nil when empty.
func (ix *Index) Track() *caption.Track {
	snap := ix.current.Load()
	if snap == nil {
		return nil
	}
	return snap.track
}

func (ix *Index) Len() int {
	snap := ix.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.captions)
}

// Captions returns the loaded captions in order, stamped for IndexOf.
func (ix *Index) Captions() []caption.Caption {
	snap := ix.current.Load()
	if snap == nil {
		return nil
	}
	out := make([]caption.Caption, len(snap.captions))
	copy(out, snap.captions)
	return out
}

// ActiveAt returns the caption whose [Start, End] contains t. When captions
// overlap the one with the earliest start (then file order) wins.
func (ix *Index) ActiveAt(t time.Duration) (caption.Caption, bool) {
	snap := ix.current.Load()
	if snap == nil {
		return caption.Caption{}, false
	}

	// captions[0:started] all start at or before t
	started := sort.Search(len(snap.starts), func(i int) bool {
		return snap.starts[i] > t
	})
	// first caption whose end reaches t; maxEnds is non-decreasing so the
	// first crossing is a caption that itself ends at or after t
	first := sort.Search(started, func(i int) bool {
		return snap.maxEnds[i] >= t
	})
	if first == started {
		return caption.Caption{}, false
	}
	return snap.captions[first], true
}

// Previous returns the latest-starting caption that starts before
// t - Guards.Previous. With nothing earlier it returns the first caption, so
// it only reports false for an empty index.
func (ix *Index) Previous(t time.Duration) (caption.Caption, bool) {
	snap := ix.current.Load()
	if snap == nil || len(snap.captions) == 0 {
		return caption.Caption{}, false
	}

	limit := t - ix.guards.Previous
	before := sort.Search(len(snap.starts), func(i int) bool {
		return snap.starts[i] >= limit
	})
	if before == 0 {
		return snap.captions[0], true
	}

	// earliest of the captions sharing the greatest qualifying start
	latest := snap.starts[before-1]
	i := sort.Search(before, func(i int) bool {
		return snap.starts[i] >= latest
	})
	return snap.captions[i], true
}

// Next returns the earliest caption starting after t + Guards.Next.
func (ix *Index) Next(t time.Duration) (caption.Caption, bool) {
	snap := ix.current.Load()
	if snap == nil {
		return caption.Caption{}, false
	}

	limit := t + ix.guards.Next
	i := sort.Search(len(snap.starts), func(i int) bool {
		return snap.starts[i] > limit
	})
	if i == len(snap.captions) {
		return caption.Caption{}, false
	}
	return snap.captions[i], true
}

// IndexOf returns the position of c in the loaded track. Captions handed out
// by this index resolve by their stamp, as long as they still equal the
// caption at that position, and stop resolving once another track is loaded.
// Captions without a stamp are matched by value, first match.
func (ix *Index) IndexOf(c caption.Caption) (int, bool) {
	snap := ix.current.Load()
	if snap == nil {
		return 0, false
	}

	if stamp, ok := c.Stamp(); ok {
		if stamp.Generation != snap.generation ||
			stamp.Position < 0 || stamp.Position >= len(snap.captions) ||
			!snap.captions[stamp.Position].Equal(c) {
			return 0, false
		}
		return stamp.Position, true
	}

	// equal captions share a start, so only that run needs checking
	i := sort.Search(len(snap.starts), func(i int) bool {
		return snap.starts[i] >= c.Start
	})
	for ; i < len(snap.captions) && snap.starts[i] == c.Start; i++ {
		if snap.captions[i].Equal(c) {
			return i, true
		}
	}
	return 0, false
}
