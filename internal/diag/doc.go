// Package diag defines the diagnostic model used by the reflow pipeline.
//
// Diagnostics are non-fatal findings: a word wider than the target width, a
// run that cannot change anything, a file that could not be decoded. Hard
// failures stay ordinary Go errors; a diagnostic is something the user may want
// to see next to a successful result.
//
// # Data model
//
//   - Severity – Info, Warning, Error.
//   - Code – compact numeric identifier with a stable string ID (RFL1002, IO4001).
//   - Message – short, human oriented text.
//   - Primary – source.Span of the offending text (may be empty for whole-file findings).
//   - Notes – optional secondary spans with extra context.
//
// # Emitting
//
// Stages take a Reporter and never own storage. BagReporter collects into a Bag
// that supports a cap, sorting and deduplication; DedupReporter drops repeats
// before they reach the bag. ReportBuilder chains notes before Emit.
//
// Rendering lives in internal/diagfmt; FormatShort here is the stable
// one-line-per-entry form used by tests and `--format short`.
package diag
