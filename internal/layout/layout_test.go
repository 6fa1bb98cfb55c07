package layout_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reflow/internal/classify"
	"reflow/internal/format"
	"reflow/internal/layout"
	"reflow/internal/lexer"
	"reflow/internal/source"
	"reflow/internal/token"
)

func lexAll(opts lexer.Options, texts ...string) []token.Line {
	return lexer.New(opts).Lines(source.VirtualLines(0, texts))
}

// render joins packed words with single spaces, enough to see where lines end.
func render(res layout.Result) []string {
	out := make([]string, 0, len(res.Lines))
	for _, l := range res.Lines {
		var sb strings.Builder
		for _, t := range l.Tokens {
			sb.WriteString(t.Text)
			sb.WriteString(t.Sep.Text())
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	return out
}

func TestFlattenInsertsManualBreaks(t *testing.T) {
	lines := lexAll(lexer.DefaultOptions(), "one\n", "two\n", "three\n")
	ds := []classify.Decision{{Manual: true}, {}, {}}
	stream := layout.Flatten(lines, ds)

	var kinds []string
	for _, tok := range stream {
		if tok.IsHardBreak() {
			kinds = append(kinds, "|")
			continue
		}
		kinds = append(kinds, tok.Text)
	}
	want := []string{"one", "|", "two", "three", "|"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("stream mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenKeepsEmptyLinesIsolated(t *testing.T) {
	lines := lexAll(lexer.DefaultOptions(), "para\n", "\n", "next\n")
	// все границы мягкие, как при отключённом распознавании
	ds := make([]classify.Decision, len(lines))
	stream := layout.Flatten(lines, ds)

	got := render(layout.Pack(stream, 80))
	want := []string{"para", "", "next"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("packed lines mismatch (-want +got):\n%s", diff)
	}
}

func TestPackWrapsAtWordBoundaries(t *testing.T) {
	lines := lexAll(lexer.Options{}, "a very long line that exceeds the limit")
	stream := layout.Flatten(lines, classify.Lines(lines, classify.Options{}))
	res := layout.Pack(stream, 10)

	want := []string{"a very", "long line", "that", "exceeds", "the limit"}
	if diff := cmp.Diff(want, render(res)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
	if len(res.Overlong) != 0 {
		t.Errorf("no word exceeds 10 columns, got %d overlong", len(res.Overlong))
	}
	if !res.Lines[len(res.Lines)-1].Hard || res.Lines[0].Hard {
		t.Errorf("only the stream's closing break is hard")
	}
}

func TestPackBreakCharCountsOneColumn(t *testing.T) {
	lines := lexAll(lexer.DefaultOptions(), "ab cd-efgh")
	stream := layout.Flatten(lines, make([]classify.Decision, 1))

	// "ab cd-" занимает 6 колонок: при ширине 5 перенос перед "cd-"
	got := render(layout.Pack(stream, 5))
	want := []string{"ab", "cd-", "efgh"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	got = render(layout.Pack(stream, 6))
	want = []string{"ab cd-", "efgh"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPackOverlongWordGetsOwnLine(t *testing.T) {
	lines := lexAll(lexer.Options{}, "tiny supercalifragilistic word")
	stream := layout.Flatten(lines, make([]classify.Decision, 1))
	res := layout.Pack(stream, 8)

	want := []string{"tiny", "supercalifragilistic", "word"}
	if diff := cmp.Diff(want, render(res)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if len(res.Overlong) != 1 || res.Overlong[0].Text != "supercalifragilistic" {
		t.Fatalf("expected one overlong word, got %+v", res.Overlong)
	}
}

func TestPackOverlongFirstWordLeavesNoBlankLine(t *testing.T) {
	lines := lexAll(lexer.Options{}, "enormousword x")
	stream := layout.Flatten(lines, make([]classify.Decision, 1))
	got := render(layout.Pack(stream, 4))
	want := []string{"enormousword", "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPackSpaceRuns(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []string
	}{
		// пробелы остаются на закрытой строке и не переносятся
		{"abcd  e", 5, []string{"abcd\n", "e\n"}},
		{"ab   c", 6, []string{"ab   c\n"}},
		{"ab   c", 5, []string{"ab c\n"}},
		{"ab   c", 3, []string{"ab\n", "c\n"}},
		{"   abc", 6, []string{"   abc\n"}},
		{"   abc", 4, []string{"abc\n"}},
		{"a-  bc", 5, []string{"a- bc\n"}},
		{"a-  bc", 4, []string{"a-bc\n"}},
		{"a-  bc", 3, []string{"a-\n", "bc\n"}},
		{"   ", 2, []string{"\n"}},
	}
	for _, tc := range cases {
		lines := lexAll(lexer.DefaultOptions(), tc.text)
		stream := layout.Flatten(lines, make([]classify.Decision, 1))
		got := format.Emit(layout.Pack(stream, tc.width).Lines, format.Options{})
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q at width %d (-want +got):\n%s", tc.text, tc.width, diff)
		}
	}
}

func TestPackEmptyStream(t *testing.T) {
	if res := layout.Pack(nil, 10); len(res.Lines) != 0 {
		t.Fatalf("expected no lines, got %+v", res.Lines)
	}
	stream := layout.Flatten(nil, nil)
	if len(stream) != 1 || !stream[0].IsHardBreak() {
		t.Fatalf("empty input flattens to a single closing break, got %+v", stream)
	}
}
