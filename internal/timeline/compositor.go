package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"subvoice/internal/audio"
	"subvoice/internal/logging"
	"subvoice/internal/services"
	"subvoice/internal/subtitles"
	"subvoice/internal/textutil"
)

// Synthesizer renders cue text to a normalized clip on disk.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, output string) error
}

// Fitter stretches a clip to an exact target duration.
type Fitter interface {
	Fit(ctx context.Context, input, output string, target time.Duration, workDir string) error
}

// Verifier gates clips between stages.
type Verifier interface {
	Check(ctx context.Context, path string) error
}

// StatusFunc receives human-readable progress text. It is pure observation:
// implementations must not assume it affects compositing in any way.
type StatusFunc func(message string)

// Compositor builds the narration track: a silent base buffer spanning all
// cues plus a trailing pad, with each cue's fitted clip overlaid at its start
// offset.
type Compositor struct {
	synth       Synthesizer
	fitter      Fitter
	verifier    Verifier
	sampleRate  int
	channels    int
	trailingPad time.Duration
	logger      *slog.Logger
}

// New builds a Compositor.
func New(synth Synthesizer, fitter Fitter, verifier Verifier, sampleRate, channels int, trailingPad time.Duration, logger *slog.Logger) *Compositor {
	return &Compositor{
		synth:       synth,
		fitter:      fitter,
		verifier:    verifier,
		sampleRate:  sampleRate,
		channels:    channels,
		trailingPad: trailingPad,
		logger:      logging.NewComponentLogger(logger, "timeline"),
	}
}

// Build processes cues strictly in supplied order: synthesize, verify, fit to
// the cue span, verify again, then overlay additively at the cue's absolute
// start. Cues whose collapsed text is empty are skipped and leave silence in
// place. Any stage failure aborts the whole build; there is no per-cue
// skip-and-continue.
func (c *Compositor) Build(ctx context.Context, cues []subtitles.Cue, voice, workDir string, status StatusFunc) (*audio.Buffer, error) {
	if len(cues) == 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "no cues to narrate", nil)
	}

	last := cues[len(cues)-1]
	total := last.End + c.trailingPad
	base, err := audio.NewSilence(total, c.sampleRate, c.channels)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "allocating base track", err)
	}
	if c.logger != nil {
		c.logger.Info("building narration track",
			logging.Int("cues", len(cues)),
			logging.Duration("length", total))
	}

	for i, cue := range cues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := textutil.CollapseWhitespace(cue.Text)
		if text == "" {
			if c.logger != nil {
				c.logger.Debug("skipping empty cue", logging.Int("cue_index", cue.Index))
			}
			continue
		}

		report(status, fmt.Sprintf("Narrating cue %d of %d (%d%%)", i+1, len(cues), (i*100)/len(cues)))

		if err := c.renderCue(ctx, cue, text, voice, workDir, base); err != nil {
			return nil, err
		}
	}

	report(status, "Narration track complete")
	return base, nil
}

func (c *Compositor) renderCue(ctx context.Context, cue subtitles.Cue, text, voice, workDir string, base *audio.Buffer) error {
	cueDir := filepath.Join(workDir, fmt.Sprintf("cue-%04d", cue.Index))
	if err := os.MkdirAll(cueDir, 0o755); err != nil {
		return services.Wrap(services.ErrExternalTool, "timeline", "render", "creating cue scratch dir", err)
	}
	defer os.RemoveAll(cueDir)

	raw := filepath.Join(cueDir, "raw.wav")
	if err := c.synth.Synthesize(ctx, text, voice, raw); err != nil {
		return fmt.Errorf("cue %d: %w", cue.Index, err)
	}
	if err := c.verifier.Check(ctx, raw); err != nil {
		return fmt.Errorf("cue %d: synthesized clip: %w", cue.Index, err)
	}

	fitted := filepath.Join(cueDir, "fitted.wav")
	if err := c.fitter.Fit(ctx, raw, fitted, cue.Span(), cueDir); err != nil {
		return fmt.Errorf("cue %d: %w", cue.Index, err)
	}
	if err := c.verifier.Check(ctx, fitted); err != nil {
		return fmt.Errorf("cue %d: fitted clip: %w", cue.Index, err)
	}

	clip, err := audio.ReadWAVFile(fitted)
	if err != nil {
		return fmt.Errorf("cue %d: reading fitted clip: %w", cue.Index, err)
	}
	if err := base.Overlay(clip, cue.Start); err != nil {
		return fmt.Errorf("cue %d: %w", cue.Index, err)
	}
	if c.logger != nil {
		c.logger.Debug("cue overlaid",
			logging.Int("cue_index", cue.Index),
			logging.Duration("start", cue.Start),
			logging.Duration("span", cue.Span()))
	}
	return nil
}

func report(status StatusFunc, message string) {
	if status != nil {
		status(message)
	}
}
