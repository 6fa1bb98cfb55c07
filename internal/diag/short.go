package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"reflow/internal/source"
)

type shortEntry struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>", sorted deterministically.
// Diagnostics whose file is unknown to fs are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	entries := make([]shortEntry, 0, len(diags))
	for i := range diags {
		entries = appendEntries(entries, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		if ei.Path != ej.Path {
			return ei.Path < ej.Path
		}
		if ei.Line != ej.Line {
			return ei.Line < ej.Line
		}
		if ei.Column != ej.Column {
			return ei.Column < ej.Column
		}
		if ei.Code != ej.Code {
			return ei.Code < ej.Code
		}
		return ei.Message < ej.Message
	})

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", e.Severity, e.Code, e.Path, e.Line, e.Column, e.Message)
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendEntries(out []shortEntry, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortEntry {
	if path, lc, ok := locate(fs, d.Primary); ok {
		out = append(out, shortEntry{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Path:     path,
			Line:     lc.Line,
			Column:   lc.Col,
			Message:  oneLine(d.Message),
		})
	}
	if !includeNotes {
		return out
	}
	for _, note := range d.Notes {
		path, lc, ok := locate(fs, note.Span)
		if !ok {
			continue
		}
		out = append(out, shortEntry{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     path,
			Line:     lc.Line,
			Column:   lc.Col,
			Message:  oneLine(note.Msg),
		})
	}
	return out
}

func locate(fs *source.FileSet, sp source.Span) (string, source.LineCol, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", source.LineCol{}, false
	}
	start, _ := fs.Resolve(sp)
	return filepath.ToSlash(f.Path), start, true
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
