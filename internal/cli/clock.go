package cli

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRegex = regexp.MustCompile(
	`^(?:(\d+):)?(\d{1,2}):(\d{2})(?:[,.](\d{1,3}))?$`,
)

// parseClock reads a playback time given as HH:MM:SS[,mmm], MM:SS, plain
// seconds ("12.5") or a Go duration ("1m30s").
func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseInt(orZero(m[1]), 10, 64)
		minutes, _ := strconv.ParseInt(m[2], 10, 64)
		seconds, _ := strconv.ParseInt(m[3], 10, 64)
		if minutes > 59 || seconds > 59 {
			return 0, invalidClock(s)
		}

		// "1,5" is half a second, not 5 milliseconds
		frac := m[4]
		for len(frac) < 3 {
			frac += "0"
		}
		millis, _ := strconv.ParseInt(frac, 10, 64)

		if hours > int64(math.MaxInt64/int64(time.Hour))-1 {
			return 0, invalidClock(s)
		}
		return time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second +
			time.Duration(millis)*time.Millisecond, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 ||
			f >= float64(math.MaxInt64)/float64(time.Second) {
			return 0, invalidClock(s)
		}
		return time.Duration(f * float64(time.Second)), nil
	}

	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d, nil
	}

	return 0, invalidClock(s)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func invalidClock(s string) error {
	return fmt.Errorf(
		"invalid time %q: use HH:MM:SS,mmm, seconds (12.5) or a duration (1m30s)",
		s,
	)
}
