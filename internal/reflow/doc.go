// Package reflow wires the loader, tokenizer, break classifier, packer and
// emitter into one call.
//
// Every stage is a pure function of the previous stage's output; Run adds only
// bookkeeping around them: width resolution, diagnostics, trace spans, stage
// timings and statistics. Nothing is shared between calls, so callers may run
// any number of files in parallel.
package reflow
