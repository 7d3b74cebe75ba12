// Package ffprobe wraps structured container inspection via the external
// ffprobe binary.
package ffprobe
