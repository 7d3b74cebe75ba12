// Package fitting stretches synthesized clips to exact cue spans using a
// chain of bounded tempo stages followed by a hard duration clamp.
package fitting
