package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"subvoice/internal/media/ffmpeg"
)

// Failure sentinels. Each check reports its own class so callers can react
// to the specific defect rather than scanning message text.
var (
	ErrMissingInput  = errors.New("clip missing or unreadable")
	ErrTooSmall      = errors.New("clip below minimum size")
	ErrNoAudioStream = errors.New("clip has no audio stream")
	ErrTooShort      = errors.New("clip below minimum duration")
)

// Prober decodes a media file and reports its audio characteristics.
type Prober interface {
	DecodeProbe(ctx context.Context, path string) (ffmpeg.Report, error)
}

// Verifier runs the ordered post-synthesis checks on a rendered clip.
type Verifier struct {
	prober      Prober
	minBytes    int64
	minDuration time.Duration
}

// New builds a Verifier with the given thresholds. Non-positive thresholds
// disable their check.
func New(prober Prober, minBytes int64, minDuration time.Duration) *Verifier {
	return &Verifier{prober: prober, minBytes: minBytes, minDuration: minDuration}
}

// Check validates a clip in fixed order: existence, on-disk size, presence of
// an audio stream, then decoded duration. The first failing check wins.
func (v *Verifier) Check(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	if v.minBytes > 0 && info.Size() < v.minBytes {
		return fmt.Errorf("%w: %s is %d bytes, need at least %d", ErrTooSmall, path, info.Size(), v.minBytes)
	}

	report, err := v.prober.DecodeProbe(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingInput, path, err)
	}
	if !report.HasAudio {
		return fmt.Errorf("%w: %s", ErrNoAudioStream, path)
	}
	if v.minDuration > 0 && report.Duration < v.minDuration {
		return fmt.Errorf("%w: %s is %v, need at least %v", ErrTooShort, path, report.Duration, v.minDuration)
	}
	return nil
}
