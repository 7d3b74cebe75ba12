// Package subtitles parses SRT files into the ordered cue sequence the
// narration pipeline consumes.
package subtitles
