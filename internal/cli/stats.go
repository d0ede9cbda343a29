package cli

import (
	"time"

	"github.com/mgpai22/cuetrack/internal/caption"
)

// coverage summary of a track
type trackStats struct {
	Count    int
	Covered  time.Duration // union of all caption intervals
	Average  time.Duration // mean caption duration, negative ones count as zero
	First    time.Duration // earliest start
	Last     time.Duration // latest end
	Gaps     int
	Longest  time.Duration // longest gap between captions
	Overlaps int
	Inverted int // captions ending before they start
}

func computeStats(track *caption.Track) trackStats {
	var s trackStats
	s.Count = track.Len()
	if s.Count == 0 {
		return s
	}

	var (
		total    time.Duration
		curStart time.Duration
		curEnd   time.Duration
		open     bool
	)

	// captions are sorted by start, so intervals merge in one pass
	for _, c := range track.Captions() {
		if c.End < c.Start {
			s.Inverted++
		} else {
			total += c.Duration()
		}

		end := max(c.End, c.Start)
		if !open {
			curStart, curEnd, open = c.Start, end, true
			s.First = c.Start
			s.Last = end
			continue
		}
		s.Last = max(s.Last, end)

		switch {
		case c.Start > curEnd:
			s.Covered += curEnd - curStart
			gap := c.Start - curEnd
			s.Gaps++
			s.Longest = max(s.Longest, gap)
			curStart, curEnd = c.Start, end
		case c.Start < curEnd:
			s.Overlaps++
			curEnd = max(curEnd, end)
		default:
			curEnd = max(curEnd, end)
		}
	}
	s.Covered += curEnd - curStart
	s.Average = total / time.Duration(s.Count)

	return s
}

// share of a media duration covered by captions, 0..1
func (s trackStats) coverageOf(media time.Duration) float64 {
	if media <= 0 {
		return 0
	}
	return min(float64(s.Covered)/float64(media), 1)
}
