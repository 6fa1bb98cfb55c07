package layout

import (
	"reflow/internal/token"
)

// Line is one packed output line. The terminating newline is implicit.
type Line struct {
	Tokens []token.Token
	// Hard reports whether the line was ended by a hard break from the stream
	// rather than by running out of width.
	Hard bool
}

// Result holds the packed lines and the words that did not fit any line.
type Result struct {
	Lines    []Line
	Overlong []token.Token
}

// Pack fills lines greedily up to width columns, counting columns the way the
// writer prints them.
//
// A word is charged the spaces queued before it plus its own width; a break
// character stays on the line and adds one column. Spaces are only charged
// once a word follows them, so empty space tokens never close a line. A line
// is closed only when the word would not fit even after the least spacing a
// reread of the output keeps there: one space after a plain word, none after
// a break character. Otherwise a run of spaces that does not fit shrinks to
// one space, or to none when even one does not fit. Indentation that does not
// fit is dropped. A line is never closed while it holds no word, so an
// over-long word starts its own line without leaving a blank one behind.
func Pack(stream []token.Token, width int) Result {
	var res Result
	var cur []token.Token
	col := 0    // columns written so far
	pend := 0   // spaces queued before the next word
	blanks := 0 // empty space tokens at the tail of cur
	visible := false

	closeLine := func(hard bool) {
		res.Lines = append(res.Lines, Line{Tokens: cur, Hard: hard})
		cur = nil
		col, pend, blanks = 0, 0, 0
		visible = false
	}

	for _, tok := range stream {
		if tok.IsHardBreak() {
			closeLine(true)
			continue
		}
		if isBlank(tok) {
			cur = append(cur, tok)
			pend++
			blanks++
			continue
		}

		w := visibleWidth(tok)
		if col+pend+w > width {
			least := pend - blanks
			switch {
			case !visible:
				cur = cur[:len(cur)-blanks]
				pend = 0
			case col+least+w > width:
				closeLine(false)
			default:
				cur, pend = squeeze(cur, blanks, least, col+1+w <= width)
			}
		}
		if w > width && !tok.Empty() {
			res.Overlong = append(res.Overlong, tok)
		}
		cur = append(cur, tok)
		col += pend + w
		pend, blanks = trailing(tok), 0
		visible = true
	}
	if len(cur) > 0 {
		closeLine(false)
	}
	return res
}

func isBlank(tok token.Token) bool {
	return tok.Empty() && tok.Sep.Kind == token.SepSpace
}

// visibleWidth returns the columns a word prints, break character included.
func visibleWidth(tok token.Token) int {
	if tok.IsBreakChar() {
		return tok.Len + 1
	}
	return tok.Len
}

// trailing returns the spaces a word queues after itself.
func trailing(tok token.Token) int {
	if tok.IsBreakChar() {
		return 0
	}
	return 1
}

// squeeze drops the empty space tokens at the tail of cur and returns the
// spaces still queued. After a break character one space is kept when room
// allows.
func squeeze(cur []token.Token, blanks, least int, room bool) ([]token.Token, int) {
	keep := cur[len(cur)-blanks]
	cur = cur[:len(cur)-blanks]
	if least == 0 && room {
		// слово закрыто символом переноса, пробел даёт пустой токен
		return append(cur, keep), 1
	}
	return cur, least
}
