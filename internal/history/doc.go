// Package history records completed and failed narration runs in a local
// SQLite database so past work can be inspected from the CLI.
package history
