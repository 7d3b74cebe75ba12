// Package timeline composes the full narration track from per-cue clips.
package timeline
