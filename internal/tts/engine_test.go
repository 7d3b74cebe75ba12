package tts

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordedCall struct {
	name string
	args []string
}

type fakeResampler struct {
	calls int
	err   error
}

func (f *fakeResampler) Resample(ctx context.Context, input, output string, sampleRate, channels int) error {
	f.calls++
	return f.err
}

func newTestEngine(resampler Resampler, run commandRunner) *Engine {
	e := NewEngine("say", 200, 48000, 2, resampler, nil)
	e.WithCommandRunner(run)
	return e
}

func hasFlag(args []string, flag, value string) bool {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestSynthesizePassesVoiceAndRate(t *testing.T) {
	var calls []recordedCall
	resampler := &fakeResampler{}
	e := newTestEngine(resampler, func(ctx context.Context, name string, args ...string) (string, error) {
		calls = append(calls, recordedCall{name, args})
		return "", nil
	})

	if err := e.Synthesize(context.Background(), "Hello there.", "Samantha", "/tmp/clip.wav"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected one say invocation, got %d", len(calls))
	}
	args := calls[0].args
	if !hasFlag(args, "-v", "Samantha") {
		t.Fatalf("missing voice flag: %v", args)
	}
	if !hasFlag(args, "-r", "200") {
		t.Fatalf("missing rate flag: %v", args)
	}
	if !hasFlag(args, "-o", "/tmp/clip.aiff") {
		t.Fatalf("intermediate output should be aiff: %v", args)
	}
	if args[len(args)-1] != "Hello there." {
		t.Fatalf("text should be the final argument: %v", args)
	}
	if resampler.calls != 1 {
		t.Fatalf("resampler calls = %d, want 1", resampler.calls)
	}
}

func TestSynthesizeRetriesWithoutVoiceOnInvalidVoice(t *testing.T) {
	var calls []recordedCall
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		calls = append(calls, recordedCall{name, args})
		if len(calls) == 1 {
			return "Voice `Nonexistent' not found.", errors.New("exit status 1")
		}
		return "", nil
	})

	if err := e.Synthesize(context.Background(), "Hello.", "Nonexistent", "/tmp/clip.wav"); err != nil {
		t.Fatalf("Synthesize should recover via default voice: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two say invocations, got %d", len(calls))
	}
	for _, arg := range calls[1].args {
		if arg == "-v" {
			t.Fatalf("retry must omit the voice flag: %v", calls[1].args)
		}
	}
}

func TestSynthesizeNoRetryOnOtherFailure(t *testing.T) {
	var calls int
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		calls++
		return "some other failure", errors.New("exit status 2")
	})

	err := e.Synthesize(context.Background(), "Hello.", "Samantha", "/tmp/clip.wav")
	if err == nil {
		t.Fatal("expected failure to propagate")
	}
	if errors.Is(err, ErrInvalidVoice) {
		t.Fatal("generic failure must not classify as invalid voice")
	}
	if calls != 1 {
		t.Fatalf("generic failure must not retry: %d calls", calls)
	}
}

func TestSynthesizeInvalidVoiceWithoutVoiceDoesNotLoop(t *testing.T) {
	var calls int
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		calls++
		return "voice not found", errors.New("exit status 1")
	})

	err := e.Synthesize(context.Background(), "Hello.", "", "/tmp/clip.wav")
	if !errors.Is(err, ErrInvalidVoice) {
		t.Fatalf("expected ErrInvalidVoice, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("default-voice failure must not retry: %d calls", calls)
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		t.Fatal("say must not run for empty text")
		return "", nil
	})
	if err := e.Synthesize(context.Background(), "   ", "Samantha", "/tmp/clip.wav"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSynthesizeResampleFailure(t *testing.T) {
	e := newTestEngine(&fakeResampler{err: errors.New("conversion failed")}, func(ctx context.Context, name string, args ...string) (string, error) {
		return "", nil
	})
	err := e.Synthesize(context.Background(), "Hello.", "", "/tmp/clip.wav")
	if err == nil || !strings.Contains(err.Error(), "converting synthesized clip") {
		t.Fatalf("expected resample error, got %v", err)
	}
}
