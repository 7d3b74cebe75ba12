package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"subvoice/internal/logging"
)

// commandRunner executes a command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Runner invokes the ffmpeg binary. All pipeline transcoding goes through it
// so binary discovery and diagnostics capture live in one place.
type Runner struct {
	binary string
	logger *slog.Logger
	run    commandRunner
}

// NewRunner builds a Runner for the given binary. An empty binary triggers
// discovery: a bundled ffmpeg next to the running executable wins, then PATH.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = Discover("ffmpeg")
	}
	return &Runner{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(run commandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// Binary returns the resolved ffmpeg executable.
func (r *Runner) Binary() string {
	return r.binary
}

// Exec runs ffmpeg with the provided arguments and returns the combined
// output. A non-zero exit propagates as an error carrying the output tail.
func (r *Runner) Exec(ctx context.Context, args ...string) (string, error) {
	if r.logger != nil {
		r.logger.Debug("executing ffmpeg", logging.String("args", strings.Join(args, " ")))
	}
	output, err := r.run(ctx, r.binary, args...)
	if err != nil {
		return output, fmt.Errorf("ffmpeg: %w", err)
	}
	return output, nil
}

// Discover resolves an external tool: a sidecar binary in the directory of
// the running executable is preferred, then PATH lookup, then the bare name.
func Discover(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), name)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate
		}
	}
	if resolved, err := exec.LookPath(name); err == nil {
		return resolved
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	text := string(output)
	if err != nil {
		return text, fmt.Errorf("%w: %s", err, tail(text, 2048))
	}
	return text, nil
}

func tail(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return strings.TrimSpace(text[len(text)-max:])
}
