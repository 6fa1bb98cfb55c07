package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reflow/internal/diag"
	"reflow/internal/source"
)

type palette struct {
	err, warn, info, note, path, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		note:  color.New(color.FgBlue),
		path:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		d := &items[i]
		if err := prettyOne(w, pal, pal.severity(d.Severity), d.Severity.String(), d.Code, d.Primary, d.Message, fs, opts); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if err := prettyOne(w, pal, pal.note, "NOTE", d.Code, n.Span, n.Msg, fs, opts); err != nil {
				return err
			}
		}
	}
	if hidden := bag.Len() - len(items) + bag.Dropped(); hidden > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", hidden); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, pal palette, sevColor *color.Color, label string, code diag.Code, sp source.Span, msg string, fs *source.FileSet, opts PrettyOpts) error {
	f := fs.Get(sp.File)
	if f == nil {
		_, err := fmt.Fprintf(w, "%s %s: %s\n", sevColor.Sprint(label), code.ID(), msg)
		return err
	}
	start, end := fs.Resolve(sp)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", pal.path.Sprint(loc), sevColor.Sprint(label), code.ID(), msg); err != nil {
		return err
	}

	line := f.GetLine(start.Line)
	if line == "" {
		return nil
	}
	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))
	if _, err := fmt.Fprintf(w, "%s |\n%s | %s\n", pad, gutter, line); err != nil {
		return err
	}

	col := int(start.Col) - 1
	col = max(0, min(col, len(line)))
	stop := len(line)
	if end.Line == start.Line {
		stop = max(col, min(int(end.Col)-1, len(line)))
	}
	width := max(1, runewidth.StringWidth(line[col:stop]))
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "%s | %s%s\n", pad, blankOut(line[:col]), pal.caret.Sprint(marker))
	return err
}

// blankOut keeps tabs so the caret lines up under tab-indented text.
func blankOut(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
