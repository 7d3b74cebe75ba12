package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subvoice/internal/audio"
	"subvoice/internal/config"
	"subvoice/internal/fitting"
	"subvoice/internal/history"
	"subvoice/internal/logging"
	"subvoice/internal/media/ffmpeg"
	"subvoice/internal/media/ffprobe"
	"subvoice/internal/media/verify"
	"subvoice/internal/mux"
	"subvoice/internal/notifications"
	"subvoice/internal/services"
	"subvoice/internal/subtitles"
	"subvoice/internal/textutil"
	"subvoice/internal/timeline"
	"subvoice/internal/tts"
)

// alertMessageLimit bounds alert text so notification surfaces stay readable.
const alertMessageLimit = 300

// Request describes one narration run.
type Request struct {
	VideoPath    string
	SubtitlePath string
	Voice        string
	// OutputPath overrides the derived output location when non-empty.
	OutputPath string
}

// Result reports a finished run.
type Result struct {
	RunID      string
	OutputPath string
	CueCount   int
	Codec      string
	Elapsed    time.Duration
}

// Alerter receives terminal failure notifications for the user-facing
// surface. Message text is already truncated to a bounded length.
type Alerter interface {
	Alert(title, message string)
}

// Runner wires the narration pipeline together and executes runs end to end.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	compositor *timeline.Compositor
	verifier   *verify.Verifier
	muxer      *mux.Muxer
	store      *history.Store
	notifier   notifications.Service
	alerter    Alerter
	status     timeline.StatusFunc
}

// Option customizes a Runner.
type Option func(*Runner)

// WithStatus installs a progress callback. It is pure observation.
func WithStatus(status timeline.StatusFunc) Option {
	return func(r *Runner) { r.status = status }
}

// WithAlerter installs the user-facing failure surface.
func WithAlerter(alerter Alerter) Option {
	return func(r *Runner) { r.alerter = alerter }
}

// WithHistory installs a run-history store. Recording failures are logged,
// never fatal to the run itself.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithNotifier overrides the notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(r *Runner) { r.notifier = notifier }
}

// New builds a Runner from configuration. Every component receives the shared
// immutable config by reference; nothing here mutates it.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	transcoder := ffmpeg.NewRunner(cfg.Tools.FFmpeg, logger)
	prober := ffprobe.NewClient(resolveFFprobe(cfg.Tools.FFprobe))
	verifier := verify.New(transcoder, cfg.Audio.MinClipBytes, time.Duration(cfg.Audio.MinClipMillis)*time.Millisecond)
	engine := tts.NewEngine(cfg.Tools.Say, cfg.Speech.RateWPM, cfg.Audio.SampleRate, cfg.Audio.Channels, transcoder, logger)
	fitter := fitting.New(transcoder, cfg.Audio.SampleRate, cfg.Audio.Channels, logger)
	compositor := timeline.New(engine, fitter, verifier,
		cfg.Audio.SampleRate, cfg.Audio.Channels,
		time.Duration(cfg.Audio.TrailingSilenceMillis)*time.Millisecond, logger)
	muxer := mux.New(transcoder, prober, nil, cfg.Audio.Bitrate, cfg.Audio.SampleRate, cfg.Audio.Channels, logger)

	r := &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		compositor: compositor,
		verifier:   verifier,
		muxer:      muxer,
		notifier:   notifications.NewService(cfg),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full narration pipeline: parse cues, synthesize and fit
// each one onto the timeline, export the track, and mux it into the video.
// Any stage failure aborts the run, is surfaced through the alert channel,
// and is recorded in history.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	result := Result{RunID: runID}

	outputPath, err := r.resolveOutputPath(req)
	if err != nil {
		return result, r.fail(ctx, runID, req, result, started, err)
	}
	result.OutputPath = outputPath

	release, err := r.acquireLock(outputPath)
	if err != nil {
		return result, r.fail(ctx, runID, req, result, started, err)
	}
	defer release()

	r.report("Parsing subtitles...")
	cues, err := subtitles.ParseFile(req.SubtitlePath)
	if err != nil {
		return result, r.fail(ctx, runID, req, result, started, err)
	}
	result.CueCount = len(cues)
	r.report(fmt.Sprintf("Parsed %d cues", len(cues)))
	if r.notifier != nil {
		_ = r.notifier.NotifyRunStarted(ctx, req.VideoPath, len(cues))
	}
	if r.logger != nil {
		r.logger.Info("run started",
			logging.String("run_id", runID),
			logging.String("video", req.VideoPath),
			logging.Int("cues", len(cues)))
	}

	workDir, err := os.MkdirTemp(r.cfg.Paths.StagingDir, "run-"+runID[:8]+"-")
	if err != nil {
		wrapped := services.Wrap(services.ErrConfiguration, "pipeline", "run", "creating staging dir", err)
		return result, r.fail(ctx, runID, req, result, started, wrapped)
	}
	defer os.RemoveAll(workDir)

	track, err := r.compositor.Build(ctx, cues, req.Voice, workDir, r.status)
	if err != nil {
		return result, r.fail(ctx, runID, req, result, started, err)
	}

	r.report("Exporting narration track...")
	trackPath := filepath.Join(workDir, "narration.wav")
	if err := audio.WriteWAVFile(track, trackPath); err != nil {
		wrapped := services.Wrap(services.ErrExternalTool, "pipeline", "export", "writing narration track", err)
		return result, r.fail(ctx, runID, req, result, started, wrapped)
	}
	if err := r.verifier.Check(ctx, trackPath); err != nil {
		return result, r.fail(ctx, runID, req, result, started, fmt.Errorf("exported track: %w", err))
	}

	r.report("Muxing narration into video...")
	muxResult, err := r.muxer.Mux(ctx, req.VideoPath, trackPath, outputPath)
	if err != nil {
		return result, r.fail(ctx, runID, req, result, started, err)
	}
	result.Codec = muxResult.Codec
	result.Elapsed = time.Since(started)

	r.report("Done")
	if r.logger != nil {
		r.logger.Info("run completed",
			logging.String("run_id", runID),
			logging.String("output", outputPath),
			logging.String("codec", muxResult.Codec),
			logging.Duration("elapsed", result.Elapsed))
	}
	if r.notifier != nil {
		_ = r.notifier.NotifyRunCompleted(ctx, outputPath, result.Elapsed)
	}
	r.record(ctx, runID, req, result, started, nil)
	return result, nil
}

func (r *Runner) resolveOutputPath(req Request) (string, error) {
	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		output = DeriveOutputPath(req.VideoPath, r.cfg.Output.Suffix)
	}
	if !r.cfg.Output.OverwriteExisting {
		if _, err := os.Stat(output); err == nil {
			return "", services.Wrap(services.ErrValidation, "pipeline", "output",
				fmt.Sprintf("output %s already exists (set overwrite_existing to replace)", output), nil)
		}
	}
	return output, nil
}

// DeriveOutputPath appends the configured suffix to the video's stem,
// keeping its extension.
func DeriveOutputPath(videoPath, suffix string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + suffix + ext
}

// acquireLock takes a per-output advisory lock so two runs never race on the
// same target file.
func (r *Runner) acquireLock(outputPath string) (func(), error) {
	lockPath := filepath.Join(r.cfg.Paths.StagingDir, lockName(outputPath))
	if err := os.MkdirAll(r.cfg.Paths.StagingDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock", "creating staging dir", err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock", "acquiring run lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "lock",
			fmt.Sprintf("another narration run is already writing %s", outputPath), nil)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}

func lockName(outputPath string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, outputPath)
	return cleaned + ".lock"
}

func (r *Runner) fail(ctx context.Context, runID string, req Request, result Result, started time.Time, err error) error {
	if r.logger != nil {
		r.logger.Error("run failed",
			logging.String("run_id", runID),
			logging.Error(err))
	}
	r.report("Error: " + err.Error())
	if r.alerter != nil {
		r.alerter.Alert("Narration failed", textutil.Truncate(err.Error(), alertMessageLimit))
	}
	if r.notifier != nil {
		_ = r.notifier.NotifyError(ctx, err, "narrate")
	}
	r.record(ctx, runID, req, result, started, err)
	return err
}

func (r *Runner) record(ctx context.Context, runID string, req Request, result Result, started time.Time, runErr error) {
	if r.store == nil {
		return
	}
	run := history.Run{
		ID:           runID,
		VideoPath:    req.VideoPath,
		SubtitlePath: req.SubtitlePath,
		OutputPath:   result.OutputPath,
		Voice:        req.Voice,
		CueCount:     result.CueCount,
		Status:       history.StatusCompleted,
		EncoderCodec: result.Codec,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = runErr.Error()
	}
	if err := r.store.Record(ctx, run); err != nil && r.logger != nil {
		r.logger.Warn("recording run history failed", logging.Error(err))
	}
}

func (r *Runner) report(message string) {
	if r.status != nil {
		r.status(message)
	}
}

func resolveFFprobe(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return ffmpeg.Discover("ffprobe")
}
