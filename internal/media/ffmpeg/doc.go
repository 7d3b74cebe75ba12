// Package ffmpeg wraps the external ffmpeg binary: discovery, invocation,
// decode probing, and the audio transforms the narration pipeline needs.
package ffmpeg
