package subtitles

import "time"

// Cue is one subtitle entry. Cues are constructed once per run by the parser
// and never mutated; the pipeline consumes them in ascending Index order
// exactly as supplied, with no re-sorting or overlap resolution.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Span returns the cue's duration. Never negative.
func (c Cue) Span() time.Duration {
	if c.End <= c.Start {
		return 0
	}
	return c.End - c.Start
}
