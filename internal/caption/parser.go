package caption

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// HH:MM:SS,mmm --> HH:MM:SS,mmm, with a period also accepted before the
// milliseconds. Anything after the end time (position hints) is ignored.
var timingRegex = regexp.MustCompile(
	`^\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})`,
)

const maxHours = math.MaxInt64/int64(time.Hour) - 1

// why a block was dropped without failing the parse
type SkipReason int

const (
	SkipShortBlock SkipReason = iota + 1
	SkipBadSequence
)

func (r SkipReason) String() string {
	switch r {
	case SkipShortBlock:
		return "short block"
	case SkipBadSequence:
		return "non-numeric sequence"
	default:
		return "unknown"
	}
}

// Warning describes a block the parser dropped.
type Warning struct {
	Line   int
	Reason SkipReason
	Text   string
}

// Parser turns SRT text into a Track. The zero value is ready to use;
// Warn, when set, is called for every dropped block.
type Parser struct {
	Warn func(Warning)
}

// Parse parses SRT text with a zero Parser.
func Parse(text string) (*Track, error) {
	return Parser{}.Parse(text)
}

// ParseBytes decodes data (UTF-8, falling back to ISO-8859-1) and parses it.
func ParseBytes(data []byte) (*Track, error) {
	return Parser{}.ParseBytes(data)
}

func (p Parser) ParseBytes(data []byte) (*Track, error) {
	return p.Parse(Decode(data))
}

func (p Parser) Parse(text string) (*Track, error) {
	blocks := splitBlocks(normalizeNewlines(text))
	captions := make([]Caption, 0, len(blocks))

	for _, b := range blocks {
		if len(b.lines) < 2 {
			p.warn(b, SkipShortBlock)
			continue
		}

		seq, err := strconv.Atoi(strings.TrimSpace(b.lines[0]))
		if err != nil {
			p.warn(b, SkipBadSequence)
			continue
		}

		start, end, ok := parseTiming(b.lines[1])
		if !ok {
			return nil, &TimestampError{Line: b.line + 1, Text: b.lines[1]}
		}

		captions = append(captions, Caption{
			Sequence: seq,
			Start:    start,
			End:      end,
			Text:     strings.Join(b.lines[2:], "\n"),
		})
	}

	return NewTrack(captions), nil
}

func (p Parser) warn(b block, reason SkipReason) {
	if p.Warn == nil {
		return
	}
	p.Warn(Warning{Line: b.line, Reason: reason, Text: b.lines[0]})
}

// run of consecutive non-blank lines; line is the 1-based number of the first
type block struct {
	line  int
	lines []string
}

func splitBlocks(text string) []block {
	var blocks []block
	var current block

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current.lines) > 0 {
				blocks = append(blocks, current)
				current = block{}
			}
			continue
		}
		if len(current.lines) == 0 {
			current.line = i + 1
		}
		current.lines = append(current.lines, line)
	}
	if len(current.lines) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

func parseTiming(line string) (time.Duration, time.Duration, bool) {
	matches := timingRegex.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, false
	}
	start, ok := parseTimestamp(matches[1], matches[2], matches[3], matches[4])
	if !ok {
		return 0, 0, false
	}
	end, ok := parseTimestamp(matches[5], matches[6], matches[7], matches[8])
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

func parseTimestamp(
	hours, minutes, seconds, millis string,
) (time.Duration, bool) {
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil || h > maxHours {
		return 0, false
	}
	// the remaining groups are fixed-width digits
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, true
}
