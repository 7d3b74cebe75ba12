package audio

import (
	"fmt"
	"time"
)

// Buffer holds interleaved 16-bit PCM samples. The narration timeline is one
// Buffer: allocated silent, then cue clips are overlaid onto it additively.
type Buffer struct {
	SampleRate int
	Channels   int
	samples    []int16
}

// NewSilence allocates a silent buffer covering the requested duration.
func NewSilence(d time.Duration, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("audio: channel count must be positive, got %d", channels)
	}
	if d < 0 {
		d = 0
	}
	frames := framesFor(d, sampleRate)
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		samples:    make([]int16, frames*channels),
	}, nil
}

// Duration returns the buffer's wall-clock length.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	frames := len(b.samples) / b.Channels
	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}

// Samples exposes the raw interleaved samples for inspection.
func (b *Buffer) Samples() []int16 {
	return b.samples
}

// Overlay adds clip's samples into the buffer starting at the given offset.
// Existing content is summed with the clip (saturating at the int16 range),
// never replaced, so overlapping clips both remain audible. Samples past the
// end of the buffer are dropped.
func (b *Buffer) Overlay(clip *Buffer, offset time.Duration) error {
	if clip == nil {
		return nil
	}
	if clip.SampleRate != b.SampleRate || clip.Channels != b.Channels {
		return fmt.Errorf("audio: overlay format mismatch: %d Hz/%d ch onto %d Hz/%d ch",
			clip.SampleRate, clip.Channels, b.SampleRate, b.Channels)
	}
	if offset < 0 {
		offset = 0
	}
	start := framesFor(offset, b.SampleRate) * b.Channels
	for i, sample := range clip.samples {
		pos := start + i
		if pos >= len(b.samples) {
			break
		}
		b.samples[pos] = saturatingAdd(b.samples[pos], sample)
	}
	return nil
}

// NonSilentIn reports whether any sample inside [from, to) is non-zero.
func (b *Buffer) NonSilentIn(from, to time.Duration) bool {
	start := framesFor(from, b.SampleRate) * b.Channels
	end := framesFor(to, b.SampleRate) * b.Channels
	if start < 0 {
		start = 0
	}
	if end > len(b.samples) {
		end = len(b.samples)
	}
	for i := start; i < end; i++ {
		if b.samples[i] != 0 {
			return true
		}
	}
	return false
}

func framesFor(d time.Duration, sampleRate int) int {
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}

func saturatingAdd(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum > 32767 {
		return 32767
	}
	if sum < -32768 {
		return -32768
	}
	return int16(sum)
}
