package timeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"subvoice/internal/audio"
	"subvoice/internal/subtitles"
)

// fakeSynth writes a short tone so downstream stages have a real file.
type fakeSynth struct {
	calls  []string
	voices []string
	err    error
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, voice, output string) error {
	f.calls = append(f.calls, text)
	f.voices = append(f.voices, voice)
	if f.err != nil {
		return f.err
	}
	return writeTone(output, 300*time.Millisecond)
}

// fakeFitter writes a tone of exactly the target duration.
type fakeFitter struct {
	targets []time.Duration
	err     error
}

func (f *fakeFitter) Fit(ctx context.Context, input, output string, target time.Duration, workDir string) error {
	f.targets = append(f.targets, target)
	if f.err != nil {
		return f.err
	}
	return writeTone(output, target)
}

type fakeVerifier struct {
	checks int
	err    error
}

func (f *fakeVerifier) Check(ctx context.Context, path string) error {
	f.checks++
	return f.err
}

func writeTone(path string, d time.Duration) error {
	buf, err := audio.NewSilence(d, 48000, 2)
	if err != nil {
		return err
	}
	samples := buf.Samples()
	for i := range samples {
		samples[i] = 1000
	}
	return audio.WriteWAVFile(buf, path)
}

func newTestCompositor(synth *fakeSynth, fitter *fakeFitter, verifier *fakeVerifier) *Compositor {
	return New(synth, fitter, verifier, 48000, 2, 500*time.Millisecond, nil)
}

func twoCues() []subtitles.Cue {
	return []subtitles.Cue{
		{Index: 1, Start: 0, End: time.Second, Text: "a"},
		{Index: 2, Start: time.Second, End: 2 * time.Second, Text: "b"},
	}
}

func TestBuildRoundTrip(t *testing.T) {
	synth := &fakeSynth{}
	fitter := &fakeFitter{}
	verifier := &fakeVerifier{}
	c := newTestCompositor(synth, fitter, verifier)

	track, err := c.Build(context.Background(), twoCues(), "Samantha", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := track.Duration(); got != 2500*time.Millisecond {
		t.Fatalf("track length = %v, want last end + 500ms pad = 2.5s", got)
	}
	if !track.NonSilentIn(0, time.Second) {
		t.Fatal("first cue window should contain audio")
	}
	if !track.NonSilentIn(time.Second, 2*time.Second) {
		t.Fatal("second cue window should contain audio")
	}
	if track.NonSilentIn(2*time.Second, 2500*time.Millisecond) {
		t.Fatal("trailing pad should be silent")
	}
	if verifier.checks != 4 {
		t.Fatalf("expected verify after synth and after fit per cue: %d checks", verifier.checks)
	}
	if len(fitter.targets) != 2 || fitter.targets[0] != time.Second || fitter.targets[1] != time.Second {
		t.Fatalf("fit targets = %v, want cue spans", fitter.targets)
	}
}

func TestBuildRejectsEmptyCueList(t *testing.T) {
	c := newTestCompositor(&fakeSynth{}, &fakeFitter{}, &fakeVerifier{})
	if _, err := c.Build(context.Background(), nil, "", t.TempDir(), nil); err == nil {
		t.Fatal("expected error for empty cue sequence")
	}
}

func TestBuildSkipsWhitespaceCues(t *testing.T) {
	synth := &fakeSynth{}
	c := newTestCompositor(synth, &fakeFitter{}, &fakeVerifier{})

	cues := []subtitles.Cue{
		{Index: 1, Start: 0, End: time.Second, Text: "  \n\t "},
		{Index: 2, Start: time.Second, End: 2 * time.Second, Text: "spoken"},
	}
	track, err := c.Build(context.Background(), cues, "", t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(synth.calls) != 1 || synth.calls[0] != "spoken" {
		t.Fatalf("only the non-empty cue should synthesize: %v", synth.calls)
	}
	if track.NonSilentIn(0, time.Second) {
		t.Fatal("skipped cue window should stay silent")
	}
	if got := track.Duration(); got != 2500*time.Millisecond {
		t.Fatalf("skipped cue must not change track length: %v", got)
	}
}

func TestBuildCollapsesCueWhitespace(t *testing.T) {
	synth := &fakeSynth{}
	c := newTestCompositor(synth, &fakeFitter{}, &fakeVerifier{})

	cues := []subtitles.Cue{{Index: 1, Start: 0, End: time.Second, Text: "hello\n  world"}}
	if _, err := c.Build(context.Background(), cues, "", t.TempDir(), nil); err != nil {
		t.Fatal(err)
	}
	if synth.calls[0] != "hello world" {
		t.Fatalf("cue text should be whitespace-collapsed: %q", synth.calls[0])
	}
}

func TestBuildStatusCallback(t *testing.T) {
	var messages []string
	c := newTestCompositor(&fakeSynth{}, &fakeFitter{}, &fakeVerifier{})

	if _, err := c.Build(context.Background(), twoCues(), "", t.TempDir(), func(m string) {
		messages = append(messages, m)
	}); err != nil {
		t.Fatal(err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected two progress messages plus completion, got %v", messages)
	}
	if !strings.Contains(messages[0], "1 of 2") {
		t.Fatalf("first message = %q", messages[0])
	}
}

func TestBuildSynthFailureAborts(t *testing.T) {
	synth := &fakeSynth{err: errors.New("synthesis failed")}
	c := newTestCompositor(synth, &fakeFitter{}, &fakeVerifier{})

	if _, err := c.Build(context.Background(), twoCues(), "", t.TempDir(), nil); err == nil {
		t.Fatal("synthesis failure must abort the build")
	}
	if len(synth.calls) != 1 {
		t.Fatalf("no per-cue skip-and-continue: %d synth calls", len(synth.calls))
	}
}

func TestBuildVerifyFailureAborts(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("too small")}
	c := newTestCompositor(&fakeSynth{}, &fakeFitter{}, verifier)

	_, err := c.Build(context.Background(), twoCues(), "", t.TempDir(), nil)
	if err == nil || !strings.Contains(err.Error(), "cue 1") {
		t.Fatalf("expected cue-tagged verification failure, got %v", err)
	}
}

func TestBuildHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestCompositor(&fakeSynth{}, &fakeFitter{}, &fakeVerifier{})

	_, err := c.Build(ctx, twoCues(), "", t.TempDir(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildOverlappingCuesSum(t *testing.T) {
	c := newTestCompositor(&fakeSynth{}, &fakeFitter{}, &fakeVerifier{})

	cues := []subtitles.Cue{
		{Index: 1, Start: 0, End: time.Second, Text: "a"},
		{Index: 2, Start: 500 * time.Millisecond, End: 1500 * time.Millisecond, Text: "b"},
	}
	track, err := c.Build(context.Background(), cues, "", t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	samples := track.Samples()
	// Inside the overlap both tones are audible: 1000 + 1000.
	idx := 48000 * 2 * 3 / 4 // 750ms
	if samples[idx] != 2000 {
		t.Fatalf("overlap should sum clips: sample = %d, want 2000", samples[idx])
	}
}
