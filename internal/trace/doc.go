// Package trace records what the reflow pipeline is doing, and when.
//
// There is no general-purpose logger in this module. Operational visibility
// comes from trace events: spans around the driver run, each file, and each
// pipeline stage, plus instant points for notable findings.
//
// # Usage
//
//	reflow wrap --trace=- --trace-level=detail notes.txt
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off.
//   - StreamTracer: writes every event immediately (text or NDJSON).
//   - RingTracer: keeps the last N events for a dump on failure.
//   - MultiTracer: fans out to several tracers.
//
// # Levels and scopes
//
// Scopes go from coarse to fine: ScopeDriver, ScopeFile, ScopeStage, ScopeLine.
// LevelPhase emits driver and file events, LevelDetail adds stages, LevelDebug
// adds per-line events. LevelError only feeds the ring buffer dump.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeStage, "pack")
//	defer span.End("")
package trace
