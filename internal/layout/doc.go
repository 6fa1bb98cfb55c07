// Package layout turns classified lines into a single token stream and packs
// that stream greedily into lines of bounded width.
//
// Hard breaks in the stream (empty newline tokens) always end a line. Words are
// never split: a word wider than the limit gets a line of its own.
package layout
