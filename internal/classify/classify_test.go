package classify_test

import (
	"testing"

	"reflow/internal/classify"
	"reflow/internal/lexer"
	"reflow/internal/source"
	"reflow/internal/token"
)

func lexAll(texts ...string) []token.Line {
	return lexer.New(lexer.DefaultOptions()).Lines(source.VirtualLines(0, texts))
}

func defaults(width int) classify.Options {
	return classify.Options{
		PreserveBreaks: true,
		StartChars:     token.DefaultStartChars(),
		Width:          width,
	}
}

func TestBoundaryRules(t *testing.T) {
	tests := []struct {
		name   string
		cur    string
		next   string
		opts   classify.Options
		manual bool
		rule   classify.Rule
	}{
		{
			name: "disabled wins over everything",
			cur:  "text\n", next: "\n",
			opts: classify.Options{StartChars: token.DefaultStartChars(), Width: 80},
			rule: classify.RuleDisabled,
		},
		{
			name: "empty next line",
			cur:  "a rather long line of text\n", next: "\n",
			opts: defaults(5), manual: true, rule: classify.RuleEmptyLine,
		},
		{
			name: "indented next line",
			cur:  "a rather long line of text\n", next: "  indented\n",
			opts: defaults(5), manual: true, rule: classify.RuleIndent,
		},
		{
			name: "list item dash",
			cur:  "a rather long line of text\n", next: "- item\n",
			opts: defaults(5), manual: true, rule: classify.RuleStartBreakChar,
		},
		{
			name: "next word would have fit",
			cur:  "first line\n", next: "second line\n",
			opts: defaults(20), manual: true, rule: classify.RuleFits,
		},
		{
			name: "start character glued to word",
			cur:  "a rather long line of text\n", next: "*bold* start\n",
			opts: defaults(10), manual: true, rule: classify.RuleStartChar,
		},
		{
			name: "quote marker",
			cur:  "a rather long line of text\n", next: ">quoted\n",
			opts: defaults(10), manual: true, rule: classify.RuleStartChar,
		},
		{
			name: "tab indentation",
			cur:  "a rather long line of text\n", next: "\tcode\n",
			opts: defaults(10), manual: true, rule: classify.RuleStartChar,
		},
		{
			name: "plain continuation is soft",
			cur:  "a rather long line of text\n", next: "continued here\n",
			opts: defaults(20), rule: classify.RuleSoft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := lexAll(tt.cur, tt.next)
			got := classify.Boundary(lines[0], lines[1], tt.opts)
			if got.Manual != tt.manual || got.Rule != tt.rule {
				t.Fatalf("Boundary() = %+v (%s), want manual=%v rule=%s", got, got.Rule, tt.manual, tt.rule)
			}
		})
	}
}

// A leading space that is not a start character leaves an empty first word.
// The start-character rule must not index into it.
func TestBoundaryEmptyWordWithoutSpaceStartChar(t *testing.T) {
	lines := lexAll("a rather long line of text\n", " x\n")
	opts := defaults(5)
	opts.StartChars = token.NewCharSet('*')

	got := classify.Boundary(lines[0], lines[1], opts)
	if got.Manual || got.Rule != classify.RuleSoft {
		t.Fatalf("Boundary() = %+v, want soft", got)
	}
}

// Rule 5 adds the next word to the line's length before reflowing. When the
// old text was wrapped much narrower than the reference width, every boundary
// is taken for a manual one and nothing gets rejoined. Kept on purpose.
func TestBoundaryFitsQuirkUsesOriginalLength(t *testing.T) {
	lines := lexAll("short\n", "lines\n", "here\n")
	ds := classify.Lines(lines, defaults(40))
	if ds[0].Rule != classify.RuleFits || ds[1].Rule != classify.RuleFits {
		t.Fatalf("narrow source lines should all look manual at width 40: %+v", ds)
	}

	ds = classify.Lines(lines, defaults(8))
	if ds[0].Manual || ds[1].Manual {
		t.Fatalf("at width 8 the boundaries are soft: %+v", ds)
	}
}

func TestLinesLastIsSoft(t *testing.T) {
	lines := lexAll("one\n", "\n", "two\n")
	ds := classify.Lines(lines, defaults(3))
	if len(ds) != 3 {
		t.Fatalf("expected 3 decisions, got %d", len(ds))
	}
	if !ds[0].Manual || ds[0].Rule != classify.RuleEmptyLine {
		t.Errorf("boundary before empty line must be manual: %+v", ds[0])
	}
	if ds[2].Manual || ds[2].Rule != classify.RuleLastLine {
		t.Errorf("last line must be soft: %+v", ds[2])
	}
	if classify.CountManual(ds) != 2 {
		t.Errorf("CountManual = %d, want 2", classify.CountManual(ds))
	}
	if got := classify.Lines(nil, defaults(3)); len(got) != 0 {
		t.Errorf("no lines, no decisions: %+v", got)
	}
}

func TestRuleString(t *testing.T) {
	if classify.RuleStartBreakChar.String() != "start-breakchar" || classify.Rule(99).String() != "unknown" {
		t.Fatal("unexpected Rule.String output")
	}
}
