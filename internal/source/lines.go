package source

import (
	"strings"

	"fortio.org/safecast"
)

// RawLine is one source line exactly as read, terminator included when present.
type RawLine struct {
	Text string
	Span Span // covers Text, terminator included
}

// HasNewline reports whether the line carries its terminator.
func (l RawLine) HasNewline() bool {
	return strings.HasSuffix(l.Text, "\n")
}

// Body returns the line without its terminator.
func (l RawLine) Body() string {
	return strings.TrimSuffix(l.Text, "\n")
}

// IsBlank reports whether the line holds nothing but spaces besides its
// terminator. Such a line prints as an empty one. Tabs are word characters
// and keep a line.
func (l RawLine) IsBlank() bool {
	return strings.Trim(l.Body(), " ") == ""
}

// Lines splits the file into raw lines. With keepEmpty false, empty and blank
// lines are dropped.
func (f *File) Lines(keepEmpty bool) []RawLine {
	texts := SplitLines(string(f.Content))
	out := make([]RawLine, 0, len(texts))
	var off uint32
	for _, text := range texts {
		n, err := safecast.Conv[uint32](len(text))
		if err != nil {
			panic(err)
		}
		line := RawLine{Text: text, Span: Span{File: f.ID, Start: off, End: off + n}}
		off += n
		if !keepEmpty && line.IsBlank() {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SplitLines cuts text after every '\n'. The last element lacks a terminator
// when text does not end with one. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	out := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, text)
			break
		}
		out = append(out, text[:i+1])
		text = text[i+1:]
	}
	return out
}

// VirtualLines wraps in-memory lines as RawLines with spans relative to file id.
func VirtualLines(id FileID, texts []string) []RawLine {
	out := make([]RawLine, 0, len(texts))
	var off uint32
	for _, text := range texts {
		n, err := safecast.Conv[uint32](len(text))
		if err != nil {
			panic(err)
		}
		out = append(out, RawLine{Text: text, Span: Span{File: id, Start: off, End: off + n}})
		off += n
	}
	return out
}
