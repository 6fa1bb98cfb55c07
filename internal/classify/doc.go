// Package classify decides, for every boundary between two source lines,
// whether the boundary is a manual break that must survive reflowing or a soft
// break left behind by an earlier wrap width.
//
// Decisions are kept in a slice parallel to the lines; tokens are never touched.
// Rules are checked in a fixed order and the first match wins:
//
//  1. manual-break detection disabled: soft
//  2. next line empty: manual
//  3. next line starts with a space and ' ' is a start character: manual
//  4. next line starts with a lone break character that is a start character: manual
//  5. next line's first word would have fit after the current line: manual
//  6. next line's first word starts with a start character: manual
//  7. otherwise soft
//
// Rule 5 compares the current line's length before reflowing with the
// reference width. That mixes the old and the new width and is kept as is.
package classify
