package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"reflow/internal/source"
	"reflow/internal/token"
)

type TokenOutput struct {
	Text  string `json:"text"`
	Sep   string `json:"sep"`
	Len   int    `json:"len"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type LineOutput struct {
	Line    int           `json:"line"`
	OrigLen int           `json:"orig_len"`
	Tokens  []TokenOutput `json:"tokens"`
}

// FormatTokensPretty выводит токены построчно в человекочитаемом формате.
func FormatTokensPretty(w io.Writer, lines []token.Line, fs *source.FileSet) error {
	for _, ln := range lines {
		pos := ""
		if fs != nil && fs.Get(ln.Span.File) != nil {
			start, _ := fs.Resolve(ln.Span)
			pos = fmt.Sprintf(" @%d", start.Line)
		}
		if _, err := fmt.Fprintf(w, "line %d%s (len %d):\n", ln.Index+1, pos, ln.OrigLen); err != nil {
			return err
		}
		for i, tok := range ln.Tokens {
			text := fmt.Sprintf("%q", tok.Text)
			if tok.IsHardBreak() {
				text = "<hard-break>"
			}
			if _, err := fmt.Fprintf(w, "  %3d: %-24s %-10s len=%d at %s\n", i+1, text, tok.Sep.String(), tok.Len, tok.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, lines []token.Line) error {
	output := make([]LineOutput, 0, len(lines))
	for _, ln := range lines {
		lo := LineOutput{
			Line:    ln.Index + 1,
			OrigLen: ln.OrigLen,
			Tokens:  make([]TokenOutput, 0, len(ln.Tokens)),
		}
		for _, tok := range ln.Tokens {
			lo.Tokens = append(lo.Tokens, TokenOutput{
				Text:  tok.Text,
				Sep:   tok.Sep.String(),
				Len:   tok.Len,
				Start: tok.Span.Start,
				End:   tok.Span.End,
			})
		}
		output = append(output, lo)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
