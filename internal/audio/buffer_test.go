package audio

import (
	"testing"
	"time"
)

func tone(t *testing.T, d time.Duration, value int16) *Buffer {
	t.Helper()
	buf, err := NewSilence(d, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf.samples {
		buf.samples[i] = value
	}
	return buf
}

func TestNewSilenceDuration(t *testing.T) {
	buf, err := NewSilence(2500*time.Millisecond, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Duration(); got != 2500*time.Millisecond {
		t.Fatalf("duration = %v, want 2.5s", got)
	}
	if buf.NonSilentIn(0, buf.Duration()) {
		t.Fatal("fresh buffer should be silent")
	}
}

func TestOverlayAdditive(t *testing.T) {
	base, err := NewSilence(time.Second, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}
	clip := tone(t, 100*time.Millisecond, 100)

	if err := base.Overlay(clip, 200*time.Millisecond); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if err := base.Overlay(clip, 200*time.Millisecond); err != nil {
		t.Fatalf("second overlay: %v", err)
	}

	idx := framesFor(250*time.Millisecond, 48000) * 2
	if got := base.samples[idx]; got != 200 {
		t.Fatalf("overlapping overlays should sum: sample = %d, want 200", got)
	}
	if base.NonSilentIn(0, 200*time.Millisecond) {
		t.Fatal("region before offset should stay silent")
	}
	if !base.NonSilentIn(200*time.Millisecond, 300*time.Millisecond) {
		t.Fatal("overlaid region should be non-silent")
	}
	if base.NonSilentIn(300*time.Millisecond, time.Second) {
		t.Fatal("region after clip should stay silent")
	}
}

func TestOverlaySaturates(t *testing.T) {
	base := tone(t, 50*time.Millisecond, 30000)
	clip := tone(t, 50*time.Millisecond, 30000)
	if err := base.Overlay(clip, 0); err != nil {
		t.Fatal(err)
	}
	if base.samples[0] != 32767 {
		t.Fatalf("expected saturation at 32767, got %d", base.samples[0])
	}
}

func TestOverlayClampsPastEnd(t *testing.T) {
	base, err := NewSilence(100*time.Millisecond, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}
	clip := tone(t, 200*time.Millisecond, 5)
	if err := base.Overlay(clip, 50*time.Millisecond); err != nil {
		t.Fatalf("overlay past end should truncate, not fail: %v", err)
	}
	if got := base.Duration(); got != 100*time.Millisecond {
		t.Fatalf("buffer length changed: %v", got)
	}
}

func TestOverlayRejectsFormatMismatch(t *testing.T) {
	base, _ := NewSilence(time.Second, 48000, 2)
	clip, _ := NewSilence(time.Second, 44100, 2)
	if err := base.Overlay(clip, 0); err == nil {
		t.Fatal("expected format mismatch error")
	}
}
