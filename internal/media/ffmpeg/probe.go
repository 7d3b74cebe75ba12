package ffmpeg

import (
	"context"
	"regexp"
	"strconv"
	"time"
)

// Report summarizes a decode probe of one media file. It is the typed face of
// ffmpeg's textual diagnostics; the stream-marker scan stays inside this
// package so callers never touch raw transcoder output.
type Report struct {
	HasAudio bool
	Duration time.Duration
}

var (
	audioStreamPattern = regexp.MustCompile(`(?i)\baudio:`)
	durationPattern    = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+(?:\.\d+)?)`)
)

// DecodeProbe decodes the file to a null sink and interprets the diagnostic
// output. ffmpeg prints stream and duration information while decoding, even
// when the exit status is non-zero, so the output is parsed either way; an
// invocation that produced no diagnostics at all propagates its error.
func (r *Runner) DecodeProbe(ctx context.Context, path string) (Report, error) {
	output, err := r.Exec(ctx, "-hide_banner", "-i", path, "-f", "null", "-")
	if output == "" && err != nil {
		return Report{}, err
	}
	return parseDecodeOutput(output), nil
}

func parseDecodeOutput(output string) Report {
	return Report{
		HasAudio: audioStreamPattern.MatchString(output),
		Duration: parseDiagnosticDuration(output),
	}
}

func parseDiagnosticDuration(output string) time.Duration {
	m := durationPattern.FindStringSubmatch(output)
	if m == nil {
		return 0
	}
	hours, errH := strconv.Atoi(m[1])
	minutes, errM := strconv.Atoi(m[2])
	seconds, errS := strconv.ParseFloat(m[3], 64)
	if errH != nil || errM != nil || errS != nil {
		return 0
	}
	total := float64(hours*3600+minutes*60) + seconds
	return time.Duration(total * float64(time.Second))
}
