package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestRunner(run commandRunner) *Runner {
	r := NewRunner("ffmpeg", nil)
	r.WithCommandRunner(run)
	return r
}

func TestDecodeProbeParsesDiagnostics(t *testing.T) {
	output := `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':
  Duration: 00:01:23.45, start: 0.000000, bitrate: 1200 kb/s
  Stream #0:0(und): Video: h264 (High), yuv420p, 1920x1080
  Stream #0:1(und): Audio: aac (LC), 48000 Hz, stereo, fltp, 128 kb/s`

	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		return output, errors.New("exit status 1")
	})

	report, err := r.DecodeProbe(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("DecodeProbe: %v", err)
	}
	if !report.HasAudio {
		t.Fatal("expected audio stream to be detected")
	}
	want := time.Minute + 23*time.Second + 450*time.Millisecond
	if report.Duration != want {
		t.Fatalf("duration = %v, want %v", report.Duration, want)
	}
}

func TestDecodeProbeAudioMarkerCaseInsensitive(t *testing.T) {
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		return "Stream #0:0: AUDIO: pcm_s16le\nDuration: 00:00:02.00", nil
	})
	report, err := r.DecodeProbe(context.Background(), "clip.wav")
	if err != nil {
		t.Fatal(err)
	}
	if !report.HasAudio {
		t.Fatal("upper-case audio marker should match")
	}
}

func TestDecodeProbeVideoOnly(t *testing.T) {
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		return "Duration: 00:00:10.00\nStream #0:0: Video: h264", nil
	})
	report, err := r.DecodeProbe(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if report.HasAudio {
		t.Fatal("video-only file should not report audio")
	}
	if report.Duration != 10*time.Second {
		t.Fatalf("duration = %v, want 10s", report.Duration)
	}
}

func TestDecodeProbeNoOutputPropagatesError(t *testing.T) {
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		return "", errors.New("no such file")
	})
	if _, err := r.DecodeProbe(context.Background(), "missing.mp4"); err == nil {
		t.Fatal("expected error when ffmpeg produced no diagnostics")
	}
}

func TestParseDiagnosticDurationMissing(t *testing.T) {
	if got := parseDiagnosticDuration("no duration line here"); got != 0 {
		t.Fatalf("expected zero duration, got %v", got)
	}
}

func TestSilenceArguments(t *testing.T) {
	var captured []string
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		captured = args
		return "", nil
	})
	if err := r.Silence(context.Background(), "out.wav", 2500*time.Millisecond, 48000, 2); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "anullsrc=r=48000:cl=stereo") {
		t.Fatalf("missing null source filter: %s", joined)
	}
	if !strings.Contains(joined, "-t 2.500000") {
		t.Fatalf("missing duration: %s", joined)
	}
}

func TestTempoArguments(t *testing.T) {
	var captured []string
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		captured = args
		return "", nil
	})
	if err := r.Tempo(context.Background(), "in.wav", "out.wav", 1.25); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "atempo=1.250000") {
		t.Fatalf("missing atempo filter: %s", joined)
	}
}

func TestClampDurationArguments(t *testing.T) {
	var captured []string
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		captured = args
		return "", nil
	})
	if err := r.ClampDuration(context.Background(), "in.wav", "out.wav", 750*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "-af apad") {
		t.Fatalf("missing apad filter: %s", joined)
	}
	if !strings.Contains(joined, "-t 0.750000") {
		t.Fatalf("missing clamp duration: %s", joined)
	}
}

func TestExecWrapsFailure(t *testing.T) {
	r := newTestRunner(func(ctx context.Context, name string, args ...string) (string, error) {
		return "stderr tail", errors.New("exit status 187")
	})
	_, err := r.Exec(context.Background(), "-version")
	if err == nil || !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("expected wrapped ffmpeg error, got %v", err)
	}
}
