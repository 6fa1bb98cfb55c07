package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"reflow/internal/source"
)

// Cursor представляет собой позицию внутри одной строки исходника
type Cursor struct {
	Line source.RawLine
	Off  uint32 // смещение внутри Line.Text
}

// NewCursor creates a cursor at the start of the line.
func NewCursor(line source.RawLine) Cursor {
	return Cursor{Line: line}
}

func (c *Cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.Line.Text))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return n
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek returns the rune under the cursor, utf8.RuneError at the end.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.Line.Text[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Line.Text[c.Off:])
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	r, sz := c.Peek()
	if sz == 0 {
		return r
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bump overflow: %w", err))
	}
	c.Off += usz
	return r
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom returns the line text between the mark and the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return c.Line.Text[m:c.Off]
}

// SpanFrom получает Span фрагмента, начиная с метки, в координатах файла
func (c *Cursor) SpanFrom(m Mark) source.Span {
	base := c.Line.Span.Start
	return source.Span{
		File:  c.Line.Span.File,
		Start: base + uint32(m),
		End:   base + c.Off,
	}
}
