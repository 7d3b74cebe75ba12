// Package mux installs the narration track as a video's sole audio stream,
// falling through an ordered list of audio encoders until one verifies.
package mux
