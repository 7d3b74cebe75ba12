// Package verify gates synthesized clips before they enter the timeline:
// a clip must exist, meet a minimum size, contain an audio stream, and decode
// to a minimum duration.
package verify
