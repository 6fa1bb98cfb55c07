// Package token defines the units the reflow pipeline moves around: words with
// their trailing separator, the source lines they came from, and the character
// sets that steer tokenization and break classification.
// Invariants:
//   - Token.Text is never modified after the lexer produced it.
//   - Token.Len is the measured width of Text only; the separator is not counted.
//   - A token with empty Text and SepNewline is a hard break (an empty source line
//     or a break materialized by the layout stage). A non-empty word carrying
//     SepNewline only marks the end of its source line and is soft.
//   - CharSet values are immutable; defaults are built fresh on every call.
package token
