// Package staging manages the per-run scratch area: listing scratch
// directories and reclaiming those left behind by interrupted runs.
package staging
