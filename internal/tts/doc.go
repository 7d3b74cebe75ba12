// Package tts renders cue text to audio clips using the host speech
// synthesizer and enumerates its installed voices.
package tts
