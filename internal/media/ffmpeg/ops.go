package ffmpeg

import (
	"context"
	"fmt"
	"time"
)

// Resample converts any decodable audio input into signed 16-bit PCM WAV at
// the requested sample rate and channel count.
func (r *Runner) Resample(ctx context.Context, input, output string, sampleRate, channels int) error {
	_, err := r.Exec(ctx,
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-acodec", "pcm_s16le",
		output,
	)
	return err
}

// Silence writes a silent WAV of the given duration using the lavfi null
// audio source.
func (r *Runner) Silence(ctx context.Context, output string, d time.Duration, sampleRate, channels int) error {
	layout := "stereo"
	if channels == 1 {
		layout = "mono"
	}
	_, err := r.Exec(ctx,
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=%s", sampleRate, layout),
		"-t", formatSeconds(d),
		"-acodec", "pcm_s16le",
		output,
	)
	return err
}

// Tempo applies a single atempo stage to the input. ffmpeg only honors
// factors in [0.5, 2.0]; callers chain multiple stages for anything outside
// that window.
func (r *Runner) Tempo(ctx context.Context, input, output string, factor float64) error {
	_, err := r.Exec(ctx,
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-af", fmt.Sprintf("atempo=%.6f", factor),
		"-acodec", "pcm_s16le",
		output,
	)
	return err
}

// ClampDuration forces the output to exactly the requested duration, padding
// with silence when the input runs short and trimming when it runs long.
func (r *Runner) ClampDuration(ctx context.Context, input, output string, d time.Duration) error {
	_, err := r.Exec(ctx,
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-af", "apad",
		"-t", formatSeconds(d),
		"-acodec", "pcm_s16le",
		output,
	)
	return err
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
