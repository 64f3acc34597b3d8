// Package logx builds the CLI logger: a log/slog fanout that writes text
// records to stderr and mirrors them into the active tracer as point events.
package logx
