package caption

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableSource is returned when the subtitle bytes cannot be obtained.
	ErrUnreadableSource = errors.New("unreadable subtitle source")

	// ErrMalformedTimestamp is wrapped by every TimestampError.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// TimestampError reports a cue whose timing line does not match
// HH:MM:SS,mmm --> HH:MM:SS,mmm. It aborts the whole parse.
type TimestampError struct {
	Line int
	Text string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp at line %d: %q", e.Line, e.Text)
}

func (e *TimestampError) Unwrap() error {
	return ErrMalformedTimestamp
}
