package fitting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"subvoice/internal/audio"
	"subvoice/internal/logging"
)

// ErrFitFailed reports that a tempo-chain stage or the final clamp failed.
var ErrFitFailed = errors.New("duration fitting failed")

// Transcoder is the slice of transcoding capability the fitter needs.
type Transcoder interface {
	Silence(ctx context.Context, output string, d time.Duration, sampleRate, channels int) error
	Tempo(ctx context.Context, input, output string, factor float64) error
	ClampDuration(ctx context.Context, input, output string, d time.Duration) error
}

// Fitter stretches or compresses clips to an exact target duration.
type Fitter struct {
	transcoder Transcoder
	sampleRate int
	channels   int
	measure    func(path string) (time.Duration, error)
	logger     *slog.Logger
}

// New builds a Fitter around the given transcoder.
func New(transcoder Transcoder, sampleRate, channels int, logger *slog.Logger) *Fitter {
	return &Fitter{
		transcoder: transcoder,
		sampleRate: sampleRate,
		channels:   channels,
		measure:    measureWAV,
		logger:     logging.NewComponentLogger(logger, "fitter"),
	}
}

// WithMeasure allows injecting a custom duration probe for tests.
func (f *Fitter) WithMeasure(measure func(path string) (time.Duration, error)) {
	if f != nil && measure != nil {
		f.measure = measure
	}
}

// Fit writes a clip of exactly target duration to output. The input is
// measured, the required speed factor decomposed into bounded tempo stages,
// each stage rendered into workDir, and the final stage clamped to the exact
// target. A non-positive target or an unmeasurable input produces silence of
// max(target, 1ms) instead of an error, so the compositor can always overlay
// something.
func (f *Fitter) Fit(ctx context.Context, input, output string, target time.Duration, workDir string) error {
	current, err := f.measure(input)
	if err != nil {
		current = 0
	}

	if target <= 0 || current <= 0 {
		length := target
		if length < time.Millisecond {
			length = time.Millisecond
		}
		if f.logger != nil {
			f.logger.Debug("degenerate fit, emitting silence",
				logging.Duration("target", target),
				logging.Duration("current", current))
		}
		if err := f.transcoder.Silence(ctx, output, length, f.sampleRate, f.channels); err != nil {
			return fmt.Errorf("%w: rendering silence: %v", ErrFitFailed, err)
		}
		return nil
	}

	factor := target.Seconds() / current.Seconds()
	steps := Chain(factor)
	if f.logger != nil {
		f.logger.Debug("fitting clip",
			logging.Duration("current", current),
			logging.Duration("target", target),
			logging.Float64("factor", factor),
			logging.Int("stages", len(steps)))
	}

	stage := input
	for i, step := range steps {
		next := filepath.Join(workDir, fmt.Sprintf("tempo-%02d.wav", i))
		if err := f.transcoder.Tempo(ctx, stage, next, step); err != nil {
			return fmt.Errorf("%w: stage %d (x%.4f): %v", ErrFitFailed, i+1, step, err)
		}
		stage = next
	}

	if err := f.transcoder.ClampDuration(ctx, stage, output, target); err != nil {
		return fmt.Errorf("%w: clamping to %v: %v", ErrFitFailed, target, err)
	}
	return nil
}

func measureWAV(path string) (time.Duration, error) {
	buf, err := audio.ReadWAVFile(path)
	if err != nil {
		return 0, err
	}
	return buf.Duration(), nil
}
