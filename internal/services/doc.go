// Package services holds cross-cutting error classification helpers shared by
// the pipeline components.
package services
