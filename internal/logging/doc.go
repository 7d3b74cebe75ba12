// Package logging builds the slog loggers used across subvoice: a pretty
// console handler for interactive use and a JSON handler for log files and
// automation, plus the shared attribute-key conventions.
package logging
