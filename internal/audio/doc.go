// Package audio implements the in-process PCM timeline: a 16-bit interleaved
// sample buffer with silent allocation, additive overlay, and a minimal
// RIFF/WAVE codec for exchanging clips with the external transcoder.
package audio
