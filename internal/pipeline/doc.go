// Package pipeline orchestrates a full narration run: subtitle parsing,
// per-cue synthesis and fitting, timeline export, and the final mux.
package pipeline
