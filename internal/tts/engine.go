package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"subvoice/internal/logging"
	"subvoice/internal/services"
)

// ErrInvalidVoice reports that the speech backend rejected the requested
// voice. Callers retry once with the system default before giving up.
var ErrInvalidVoice = errors.New("voice not available")

type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Resampler converts a synthesized clip into the pipeline's PCM format.
type Resampler interface {
	Resample(ctx context.Context, input, output string, sampleRate, channels int) error
}

// Engine renders cue text to WAV clips through the macOS speech synthesizer.
type Engine struct {
	binary     string
	rateWPM    int
	sampleRate int
	channels   int
	resampler  Resampler
	logger     *slog.Logger
	run        commandRunner
}

// NewEngine builds a speech engine around the given say binary.
func NewEngine(binary string, rateWPM, sampleRate, channels int, resampler Resampler, logger *slog.Logger) *Engine {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "say"
	}
	return &Engine{
		binary:     binary,
		rateWPM:    rateWPM,
		sampleRate: sampleRate,
		channels:   channels,
		resampler:  resampler,
		logger:     logging.NewComponentLogger(logger, "tts"),
		run:        defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Engine) WithCommandRunner(run commandRunner) {
	if e != nil && run != nil {
		e.run = run
	}
}

// Synthesize renders text to a PCM WAV at the engine's configured format.
// When the requested voice is rejected by the backend, synthesis retries once
// with the system default voice; any other failure propagates immediately.
func (e *Engine) Synthesize(ctx context.Context, text, voice, output string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return services.Wrap(services.ErrValidation, "tts", "synthesize", "empty text", nil)
	}

	intermediate := intermediatePath(output)
	defer os.Remove(intermediate)

	err := e.speak(ctx, text, voice, intermediate)
	if errors.Is(err, ErrInvalidVoice) && voice != "" {
		if e.logger != nil {
			e.logger.Warn("voice rejected, retrying with system default", logging.String("voice", voice))
		}
		err = e.speak(ctx, text, "", intermediate)
	}
	if err != nil {
		return err
	}

	if err := e.resampler.Resample(ctx, intermediate, output, e.sampleRate, e.channels); err != nil {
		return services.Wrap(services.ErrExternalTool, "tts", "resample", "converting synthesized clip", err)
	}
	return nil
}

func (e *Engine) speak(ctx context.Context, text, voice, output string) error {
	args := []string{"-o", output, "-r", strconv.Itoa(e.rateWPM)}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	args = append(args, text)

	out, err := e.run(ctx, e.binary, args...)
	if err != nil {
		if isInvalidVoiceOutput(out) || isInvalidVoiceOutput(err.Error()) {
			return fmt.Errorf("%w: %q", ErrInvalidVoice, voice)
		}
		return services.Wrap(services.ErrExternalTool, "tts", "speak", "speech synthesis failed", err)
	}
	return nil
}

// isInvalidVoiceOutput matches the backend's complaint about an unknown
// voice, e.g. "Voice `Nonexistent' not found".
func isInvalidVoiceOutput(output string) bool {
	lowered := strings.ToLower(output)
	return strings.Contains(lowered, "voice") && strings.Contains(lowered, "not found")
}

func intermediatePath(output string) string {
	if strings.HasSuffix(strings.ToLower(output), ".wav") {
		return output[:len(output)-4] + ".aiff"
	}
	return output + ".aiff"
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(output))
	if err != nil {
		return text, fmt.Errorf("%w: %s", err, text)
	}
	return text, nil
}
