package subtitles

import (
	"testing"
	"time"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:01,000
hello there

2
00:00:01,000 --> 00:00:02,000
second line
continues here

3
00:00:02,500 --> 00:00:03,250
`

func TestParse(t *testing.T) {
	cues, err := Parse(sampleSRT)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	if cues[0].Index != 1 || cues[0].Start != 0 || cues[0].End != time.Second {
		t.Fatalf("unexpected first cue: %+v", cues[0])
	}
	if cues[0].Text != "hello there" {
		t.Fatalf("unexpected first cue text: %q", cues[0].Text)
	}
	if cues[1].Text != "second line\ncontinues here" {
		t.Fatalf("multi-line text mismatch: %q", cues[1].Text)
	}
	if cues[2].Start != 2500*time.Millisecond || cues[2].End != 3250*time.Millisecond {
		t.Fatalf("unexpected third cue times: %+v", cues[2])
	}
	if cues[2].Text != "" {
		t.Fatalf("expected empty third cue text, got %q", cues[2].Text)
	}
}

func TestParseToleratesCRLFAndBOM(t *testing.T) {
	content := "\uFEFF1\r\n00:00:00,100 --> 00:00:00,600\r\nhi\r\n"
	cues, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 100*time.Millisecond || cues[0].End != 600*time.Millisecond {
		t.Fatalf("unexpected cue times: %+v", cues[0])
	}
}

func TestParsePeriodMilliseconds(t *testing.T) {
	cues, err := Parse("1\n00:00:01.500 --> 00:00:02.000\nx\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cues[0].Start != 1500*time.Millisecond {
		t.Fatalf("period-separated millis not parsed: %+v", cues[0])
	}
}

func TestParseClampsInvertedSpan(t *testing.T) {
	cues, err := Parse("1\n00:00:05,000 --> 00:00:04,000\nbackwards\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cues[0].End != cues[0].Start {
		t.Fatalf("inverted span not clamped: %+v", cues[0])
	}
	if cues[0].Span() != 0 {
		t.Fatalf("expected zero span, got %v", cues[0].Span())
	}
}

func TestParseRejectsGarbageTimestamp(t *testing.T) {
	if _, err := Parse("1\n00:00:xx,000 --> 00:00:01,000\nbad\n"); err == nil {
		t.Fatal("expected timestamp error")
	}
}

func TestParseSkipsBlocksWithoutTiming(t *testing.T) {
	cues, err := Parse("NOTE this is a comment\n\n1\n00:00:00,000 --> 00:00:01,000\nok\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "ok" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestSpanNeverNegative(t *testing.T) {
	c := Cue{Start: 2 * time.Second, End: time.Second}
	if c.Span() != 0 {
		t.Fatalf("expected clamped span, got %v", c.Span())
	}
}
