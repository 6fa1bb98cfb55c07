package source

import (
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminator", "abc", []string{"abc"}},
		{"terminated", "a\nb\n", []string{"a\n", "b\n"}},
		{"last unterminated", "a\n\nb", []string{"a\n", "\n", "b"}},
		{"only newline", "\n", []string{"\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("SplitLines(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFileLinesDropsEmpty(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("e.txt", []byte("a\n\n  \nb")))

	all := file.Lines(true)
	if len(all) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(all))
	}
	if all[3].Span.Start != 6 || all[3].Span.End != 7 {
		t.Errorf("unexpected span for last line: %v", all[3].Span)
	}
	if all[3].HasNewline() {
		t.Error("last line has no terminator")
	}

	// строка из одних пробелов печатается пустой и уходит вместе с пустыми
	kept := file.Lines(false)
	if len(kept) != 2 {
		t.Fatalf("expected 2 lines without the empty and blank ones, got %d", len(kept))
	}
	if kept[1].Text != "b" {
		t.Errorf("last kept line = %q, want %q", kept[1].Text, "b")
	}
}

func TestRawLineBody(t *testing.T) {
	l := RawLine{Text: "word\n"}
	if l.Body() != "word" || !l.HasNewline() || l.IsBlank() {
		t.Fatalf("unexpected RawLine helpers for %q", l.Text)
	}
	for text, blank := range map[string]bool{"  \n": true, "   ": true, "\n": true, " \t \n": false, " a\n": false} {
		if got := (RawLine{Text: text}).IsBlank(); got != blank {
			t.Errorf("IsBlank(%q) = %t, want %t", text, got, blank)
		}
	}
}
