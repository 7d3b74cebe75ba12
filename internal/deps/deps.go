package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subvoice/internal/config"
)

// Requirement defines an external dependency the narration pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the external binaries for the configured toolchain.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "say",
			Command:     fallback(cfg.Tools.Say, "say"),
			Description: "macOS speech synthesizer used to render cue text",
		},
		{
			Name:        "ffmpeg",
			Command:     fallback(cfg.Tools.FFmpeg, "ffmpeg"),
			Description: "Transcoder used for resampling, tempo fitting, and muxing",
		},
		{
			Name:        "ffprobe",
			Command:     fallback(cfg.Tools.FFprobe, "ffprobe"),
			Description: "Container inspector used to verify mux output",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
