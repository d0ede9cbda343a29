package caption

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
<i>Final</i> subtitle.
`
	track, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if track.Len() != 3 {
		t.Fatalf("expected 3 captions, got %d", track.Len())
	}

	first := track.At(0)
	if first.Sequence != 1 {
		t.Errorf("caption 0: expected sequence 1, got %d", first.Sequence)
	}
	if first.Start != 1*time.Second {
		t.Errorf("caption 0: expected start 1s, got %v", first.Start)
	}
	if first.End != 4*time.Second {
		t.Errorf("caption 0: expected end 4s, got %v", first.End)
	}
	if first.Text != "Hello, world!" {
		t.Errorf("caption 0: expected 'Hello, world!', got %q", first.Text)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if track.At(1).Text != expectedText {
		t.Errorf(
			"caption 1: expected %q, got %q",
			expectedText,
			track.At(1).Text,
		)
	}
	if got := track.At(1).Lines(); len(got) != 2 {
		t.Errorf("caption 1: expected 2 lines, got %d", len(got))
	}

	// markup is passed through untouched
	if track.At(2).Text != "<i>Final</i> subtitle." {
		t.Errorf("caption 2: unexpected text %q", track.At(2).Text)
	}
}

func TestParseSortsByStartStable(t *testing.T) {
	content := `3
00:00:09,000 --> 00:00:10,000
third

1
00:00:02,000 --> 00:00:03,000
tie A

2
00:00:02,000 --> 00:00:04,000
tie B

4
00:00:01,000 --> 00:00:01,500
earliest
`
	track, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []string{"earliest", "tie A", "tie B", "third"}
	if track.Len() != len(want) {
		t.Fatalf("expected %d captions, got %d", len(want), track.Len())
	}
	for i, text := range want {
		if got := track.At(i).Text; got != text {
			t.Errorf("position %d: expected %q, got %q", i, text, got)
		}
	}
}

func TestParseLeniency(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantTexts []string
	}{
		{
			name:      "index and timing without text",
			input:     "1\n00:00:01,000 --> 00:00:02,000",
			wantCount: 1,
			wantTexts: []string{""},
		},
		{
			name:      "single line block dropped",
			input:     "1\n\n2\n00:00:01,000 --> 00:00:02,000\nHi",
			wantCount: 1,
			wantTexts: []string{"Hi"},
		},
		{
			name: "non-numeric index dropped",
			input: "abc\n00:00:01,000 --> 00:00:02,000\nHi\n\n" +
				"2\n00:00:03,000 --> 00:00:04,000\nThere",
			wantCount: 1,
			wantTexts: []string{"There"},
		},
		{
			name:      "non-numeric index before a bad timing is still dropped",
			input:     "abc\nnot a timing\nHi",
			wantCount: 0,
		},
		{
			name:      "end before start kept",
			input:     "1\n00:00:05,000 --> 00:00:02,000\nBackwards",
			wantCount: 1,
			wantTexts: []string{"Backwards"},
		},
		{
			name:      "index with surrounding spaces",
			input:     "  7  \n00:00:01,000 --> 00:00:02,000\nPadded",
			wantCount: 1,
			wantTexts: []string{"Padded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if track.Len() != tt.wantCount {
				t.Fatalf(
					"expected %d captions, got %d",
					tt.wantCount,
					track.Len(),
				)
			}
			for i, text := range tt.wantTexts {
				if got := track.At(i).Text; got != text {
					t.Errorf("caption %d: expected %q, got %q", i, text, got)
				}
			}
		})
	}
}

func TestParseMalformedTimestamp(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,000\nA\n\n" +
		"2\n00:00:01 -> bad\nB\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nC\n"

	track, err := Parse(content)
	if err == nil {
		t.Fatalf("expected error, got track with %d captions", track.Len())
	}
	if track != nil {
		t.Errorf("expected no partial track on error")
	}
	if !errors.Is(err, ErrMalformedTimestamp) {
		t.Errorf("expected ErrMalformedTimestamp, got %v", err)
	}

	var tsErr *TimestampError
	if !errors.As(err, &tsErr) {
		t.Fatalf("expected *TimestampError, got %T", err)
	}
	if tsErr.Line != 6 {
		t.Errorf("expected line 6, got %d", tsErr.Line)
	}
	if tsErr.Text != "00:00:01 -> bad" {
		t.Errorf("unexpected offending text %q", tsErr.Text)
	}
}

func TestParseTimingVariants(t *testing.T) {
	tests := []struct {
		name      string
		timing    string
		wantStart time.Duration
		wantEnd   time.Duration
		wantErr   bool
	}{
		{
			name:      "comma separator",
			timing:    "01:02:03,456 --> 01:02:04,000",
			wantStart: 3723456 * time.Millisecond,
			wantEnd:   3724 * time.Second,
		},
		{
			name:      "period separator",
			timing:    "00:00:01.500 --> 00:00:02.250",
			wantStart: 1500 * time.Millisecond,
			wantEnd:   2250 * time.Millisecond,
		},
		{
			name:      "no spaces around arrow",
			timing:    "00:00:01,000-->00:00:02,000",
			wantStart: time.Second,
			wantEnd:   2 * time.Second,
		},
		{
			name:      "wide spacing and position hints",
			timing:    "00:00:01,000   -->\t00:00:02,000  X1:100 X2:200",
			wantStart: time.Second,
			wantEnd:   2 * time.Second,
		},
		{
			name:      "hours beyond two digits",
			timing:    "100:00:00,000 --> 100:00:01,000",
			wantStart: 100 * time.Hour,
			wantEnd:   100*time.Hour + time.Second,
		},
		{
			name:    "missing milliseconds",
			timing:  "00:00:01 --> 00:00:02",
			wantErr: true,
		},
		{
			name:    "two digit milliseconds",
			timing:  "00:00:01,50 --> 00:00:02,00",
			wantErr: true,
		},
		{
			name:    "single arrow",
			timing:  "00:00:01,000 -> 00:00:02,000",
			wantErr: true,
		},
		{
			name:    "hours overflow",
			timing:  "99999999999999999999:00:00,000 --> 00:00:01,000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := Parse("1\n" + tt.timing + "\nText\n")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.timing)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			c := track.At(0)
			if c.Start != tt.wantStart {
				t.Errorf("start: got %v, want %v", c.Start, tt.wantStart)
			}
			if c.End != tt.wantEnd {
				t.Errorf("end: got %v, want %v", c.End, tt.wantEnd)
			}
		})
	}
}

func TestCaptionDuration(t *testing.T) {
	track, err := Parse("1\n01:02:03,456 --> 01:02:04,000\nx\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := track.At(0).Duration()
	want := 544 * time.Millisecond
	if diff := got - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("expected duration ~%v, got %v", want, got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "  \n\t\n", "\ufeff"} {
		track, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if track.Len() != 0 {
			t.Errorf("Parse(%q): expected empty track, got %d", input, track.Len())
		}
	}
}

func TestParseLineEndings(t *testing.T) {
	base := "1\n00:00:01,000 --> 00:00:02,000\nLine one\nLine two\n\n\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nNext\n"

	inputs := map[string]string{
		"lf":   base,
		"crlf": strings.ReplaceAll(base, "\n", "\r\n"),
		"cr":   strings.ReplaceAll(base, "\n", "\r"),
		"bom":  "\ufeff" + base,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			track, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if track.Len() != 2 {
				t.Fatalf("expected 2 captions, got %d", track.Len())
			}
			if track.At(0).Sequence != 1 {
				t.Errorf("expected sequence 1, got %d", track.At(0).Sequence)
			}
			if track.At(0).Text != "Line one\nLine two" {
				t.Errorf("unexpected text %q", track.At(0).Text)
			}
		})
	}
}

func TestParseBytesLatin1Fallback(t *testing.T) {
	data := []byte("1\n00:00:01,000 --> 00:00:02,000\nCaf\xe9 cr\xe8me\n")

	track, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes returned error: %v", err)
	}
	if track.Len() != 1 {
		t.Fatalf("expected 1 caption, got %d", track.Len())
	}
	if track.At(0).Text != "Café crème" {
		t.Errorf("expected Latin-1 decoded text, got %q", track.At(0).Text)
	}
}

func TestDecodeKeepsUTF8(t *testing.T) {
	input := "翻訳されたテキスト"
	if got := Decode([]byte(input)); got != input {
		t.Errorf("Decode altered valid UTF-8: %q", got)
	}
}

func TestParserWarnings(t *testing.T) {
	content := "lonely\n\n" +
		"x\n00:00:01,000 --> 00:00:02,000\nBad index\n\n" +
		"3\n00:00:03,000 --> 00:00:04,000\nKept\n"

	var warnings []Warning
	p := Parser{Warn: func(w Warning) { warnings = append(warnings, w) }}

	track, err := p.Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if track.Len() != 1 {
		t.Fatalf("expected 1 caption, got %d", track.Len())
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}

	if warnings[0].Reason != SkipShortBlock || warnings[0].Line != 1 {
		t.Errorf("warning 0: got %+v", warnings[0])
	}
	if warnings[1].Reason != SkipBadSequence || warnings[1].Line != 3 {
		t.Errorf("warning 1: got %+v", warnings[1])
	}
	if warnings[1].Reason.String() != "non-numeric sequence" {
		t.Errorf("unexpected reason text %q", warnings[1].Reason.String())
	}
}
