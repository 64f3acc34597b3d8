// Package diag defines the diagnostic model shared by the scanner, the driver
// and the CLI.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - File and Pos – logical file name and 1-based line/column of the issue.
//   - Notes – optional secondary positions/messages for additional context.
//
// Producers emit through a Reporter so that storage stays pluggable. The
// scanner never fails because of a diagnostic; it reports and keeps going.
// BagReporter aggregates diagnostics into a Bag, which supports a cap,
// sorting and deduplication. Rendering lives in internal/diagfmt.
package diag
