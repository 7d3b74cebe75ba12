package mux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"subvoice/internal/fileutil"
	"subvoice/internal/logging"
	"subvoice/internal/media/ffprobe"
)

// EncoderAttempt names one audio codec trial. ExtraArgs are appended after
// the codec selection, preserving their order.
type EncoderAttempt struct {
	Codec     string
	ExtraArgs []string
}

// DefaultAttempts returns the built-in trial order: the platform
// hardware-accelerated AAC encoder first, the software encoder second, then
// the software encoder with the experimental-compliance flag for older
// ffmpeg builds.
func DefaultAttempts() []EncoderAttempt {
	return []EncoderAttempt{
		{Codec: "aac_at"},
		{Codec: "aac"},
		{Codec: "aac", ExtraArgs: []string{"-strict", "-2"}},
	}
}

// Transcoder runs an ffmpeg invocation and returns its combined output.
type Transcoder interface {
	Exec(ctx context.Context, args ...string) (string, error)
}

// Prober inspects a container for stream structure.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Result reports which attempt produced the output and what was tried first.
type Result struct {
	Codec string
	Tried []string
}

// AttemptFailure records why one encoder trial was rejected.
type AttemptFailure struct {
	Codec  string
	Reason string
}

// AllEncodersFailedError aggregates every trial's failure so callers see the
// whole picture, not just the first rejection.
type AllEncodersFailedError struct {
	Failures []AttemptFailure
}

func (e *AllEncodersFailedError) Error() string {
	var b strings.Builder
	b.WriteString("all audio encoders failed")
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %s", f.Codec, f.Reason)
	}
	return b.String()
}

// Muxer replaces a video's audio stream with the narration track, trying
// encoder attempts strictly in order until one produces a verified output.
type Muxer struct {
	transcoder Transcoder
	prober     Prober
	attempts   []EncoderAttempt
	bitrate    string
	sampleRate int
	channels   int
	logger     *slog.Logger
}

// New builds a Muxer. A nil or empty attempts list falls back to
// DefaultAttempts.
func New(transcoder Transcoder, prober Prober, attempts []EncoderAttempt, bitrate string, sampleRate, channels int, logger *slog.Logger) *Muxer {
	if len(attempts) == 0 {
		attempts = DefaultAttempts()
	}
	return &Muxer{
		transcoder: transcoder,
		prober:     prober,
		attempts:   attempts,
		bitrate:    bitrate,
		sampleRate: sampleRate,
		channels:   channels,
		logger:     logging.NewComponentLogger(logger, "mux"),
	}
}

// Mux writes output containing videoPath's video stream copied untouched and
// narrationPath re-encoded as the sole audio stream. Each attempt writes to a
// provisional path that is renamed into place only after its output probes
// clean, so a failed attempt never leaves a partial file at the final path.
func (m *Muxer) Mux(ctx context.Context, videoPath, narrationPath, output string) (Result, error) {
	provisional := provisionalPath(output)
	defer os.Remove(provisional)

	var tried []string
	var failures []AttemptFailure
	for _, attempt := range m.attempts {
		if err := ctx.Err(); err != nil {
			return Result{Tried: tried}, err
		}
		tried = append(tried, attempt.Codec)
		if m.logger != nil {
			m.logger.Info("trying audio encoder", logging.String("codec", attempt.Codec))
		}

		if _, err := m.transcoder.Exec(ctx, m.arguments(attempt, videoPath, narrationPath, provisional)...); err != nil {
			failures = append(failures, AttemptFailure{Codec: attempt.Codec, Reason: err.Error()})
			continue
		}

		if reason := m.probeOutput(ctx, provisional); reason != "" {
			failures = append(failures, AttemptFailure{Codec: attempt.Codec, Reason: reason})
			continue
		}

		if err := fileutil.ReplaceFile(provisional, output); err != nil {
			return Result{Tried: tried}, fmt.Errorf("mux: installing output: %w", err)
		}
		if m.logger != nil {
			m.logger.Info("mux complete",
				logging.String("codec", attempt.Codec),
				logging.Int("attempts", len(tried)))
		}
		return Result{Codec: attempt.Codec, Tried: tried}, nil
	}

	return Result{Tried: tried}, &AllEncodersFailedError{Failures: failures}
}

func (m *Muxer) arguments(attempt EncoderAttempt, videoPath, narrationPath, output string) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-i", narrationPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", attempt.Codec,
		"-b:a", m.bitrate,
		"-ar", strconv.Itoa(m.sampleRate),
		"-ac", strconv.Itoa(m.channels),
	}
	args = append(args, attempt.ExtraArgs...)
	args = append(args,
		"-movflags", "+faststart",
		"-shortest",
		output,
	)
	return args
}

func (m *Muxer) probeOutput(ctx context.Context, path string) string {
	result, err := m.prober.Inspect(ctx, path)
	if err != nil {
		return fmt.Sprintf("probing output: %v", err)
	}
	if result.AudioStreamCount() == 0 {
		return "output has no audio stream"
	}
	return ""
}

// provisionalPath keeps the container extension so the transcoder can infer
// the output format.
func provisionalPath(output string) string {
	dir := filepath.Dir(output)
	base := filepath.Base(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, "."+stem+".muxing"+ext)
}
