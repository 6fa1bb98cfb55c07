package reflow

import (
	"context"
	"fmt"
	"strconv"

	"reflow/internal/classify"
	"reflow/internal/diag"
	"reflow/internal/format"
	"reflow/internal/layout"
	"reflow/internal/lexer"
	"reflow/internal/observ"
	"reflow/internal/source"
	"reflow/internal/token"
	"reflow/internal/trace"
)

// Stage names passed to Env.OnStage and used for trace spans and timings.
const (
	StageLoad     = "load"
	StageTokenize = "tokenize"
	StageClassify = "classify"
	StagePack     = "pack"
	StageEmit     = "emit"
)

// Env carries optional collaborators of a run. The zero value is valid.
type Env struct {
	Reporter diag.Reporter
	Timer    *observ.Timer
	OnStage  func(stage string)
}

func (e Env) reporter() diag.Reporter {
	if e.Reporter == nil {
		return diag.NopReporter{}
	}
	return e.Reporter
}

// Stats summarizes one run.
type Stats struct {
	LinesIn  int `json:"lines_in" msgpack:"lines_in"`
	Dropped  int `json:"dropped_empty" msgpack:"dropped_empty"`
	LinesOut int `json:"lines_out" msgpack:"lines_out"`
	Manual   int `json:"manual_breaks" msgpack:"manual_breaks"`
	Soft     int `json:"soft_breaks" msgpack:"soft_breaks"`
	Overlong int `json:"overlong_words" msgpack:"overlong_words"`
}

// Result is the outcome of Run.
type Result struct {
	// Lines are ready to concatenate; all but possibly the last end in '\n'.
	Lines     []string
	Tokens    []token.Line
	Decisions []classify.Decision
	// Width is the target width actually used.
	Width int
	Stats Stats
}

// Text returns the concatenated output.
func (r *Result) Text() string {
	return format.Join(r.Lines)
}

// Run reflows raw lines. Raw lines keep their terminators; the last one may
// lack it, and the output then lacks it too. Spaces after the last word of
// such input are dropped along with the line they sit on.
func Run(ctx context.Context, raws []source.RawLine, opts Options, env Env) (*Result, error) {
	if opts.Width < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, opts.Width)
	}
	res := &Result{Stats: Stats{LinesIn: len(raws)}}

	stage := func(name string) func(detail string) {
		if env.OnStage != nil {
			env.OnStage(name)
		}
		_, sp := trace.Start(ctx, trace.ScopeStage, name)
		done := env.Timer.Track(name)
		return func(detail string) {
			done(detail)
			sp.End(detail)
		}
	}

	end := stage(StageLoad)
	unterminated := len(raws) > 0 && !raws[len(raws)-1].HasNewline()
	if unterminated && raws[len(raws)-1].IsBlank() {
		// пробелы в самом конце ввода отбрасываются, как и в конце строки
		raws = raws[:len(raws)-1]
	}
	if !opts.PreserveEmptyLines {
		raws = dropEmpty(raws)
	}
	res.Stats.Dropped = res.Stats.LinesIn - len(raws)
	end(strconv.Itoa(len(raws)) + " lines")

	if len(raws) == 0 {
		if opts.Width == AutoWidth {
			return nil, ErrEmptyInput
		}
		res.Width = opts.Width
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end = stage(StageTokenize)
	lx := lexer.New(lexer.Options{BreakChars: opts.BreakChars, Measure: opts.Measure})
	lines := lx.Lines(raws)
	res.Tokens = lines
	end("")

	longest := 0
	for _, l := range lines {
		longest = max(longest, l.OrigLen)
	}
	res.Width = opts.Width
	if res.Width == AutoWidth {
		res.Width = longest
		if opts.PreserveBreaks {
			diag.ReportInfo(env.reporter(), diag.RflNoEffect, fileStart(raws),
				fmt.Sprintf("no width given: lines are refilled up to the longest line (%d) and most breaks stay", longest)).Emit()
		}
	}
	ref := res.Width
	if opts.Reference == RefLongest {
		ref = longest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end = stage(StageClassify)
	ds := classify.Lines(lines, classify.Options{
		PreserveBreaks: opts.PreserveBreaks,
		StartChars:     opts.StartChars,
		Width:          ref,
	})
	res.Decisions = ds
	res.Stats.Manual = classify.CountManual(ds)
	res.Stats.Soft = len(ds) - 1 - res.Stats.Manual
	traceDecisions(ctx, lines, ds)
	end(fmt.Sprintf("%d manual", res.Stats.Manual))

	end = stage(StagePack)
	packed := layout.Pack(layout.Flatten(lines, ds), res.Width)
	res.Stats.Overlong = len(packed.Overlong)
	for _, tok := range packed.Overlong {
		diag.ReportWarning(env.reporter(), diag.RflOverlongWord, tok.Span,
			fmt.Sprintf("word %q is %d wide, target width is %d; it stays on a line of its own", tok.Text, tok.Len, res.Width)).Emit()
	}
	end(strconv.Itoa(len(packed.Lines)) + " lines")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end = stage(StageEmit)
	res.Lines = format.Emit(packed.Lines, format.Options{
		StripFinalNewline: unterminated,
	})
	res.Stats.LinesOut = len(res.Lines)
	end("")
	return res, nil
}

// File reflows a loaded source file.
func File(ctx context.Context, f *source.File, opts Options, env Env) (*Result, error) {
	return Run(ctx, f.Lines(true), opts, env)
}

// Lines reflows raw input lines (each with its terminator, as read from a file)
// and returns the output lines.
func Lines(in []string, opts Options) ([]string, error) {
	res, err := Run(context.Background(), source.VirtualLines(0, in), opts, Env{})
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// Text reflows a whole text.
func Text(s string, opts Options) (string, error) {
	out, err := Lines(source.SplitLines(s), opts)
	if err != nil {
		return "", err
	}
	return format.Join(out), nil
}

func dropEmpty(raws []source.RawLine) []source.RawLine {
	out := make([]source.RawLine, 0, len(raws))
	for _, r := range raws {
		if !r.IsBlank() {
			out = append(out, r)
		}
	}
	return out
}

func fileStart(raws []source.RawLine) source.Span {
	return source.Span{File: raws[0].Span.File, Start: raws[0].Span.Start, End: raws[0].Span.Start}
}

func traceDecisions(ctx context.Context, lines []token.Line, ds []classify.Decision) {
	tr := trace.FromContext(ctx)
	if !tr.Level().ShouldEmit(trace.ScopeLine) {
		return
	}
	parent := trace.CurrentSpan(ctx)
	for i, d := range ds {
		kind := "soft"
		if d.Manual {
			kind = "manual"
		}
		trace.Point(tr, trace.ScopeLine, "boundary",
			fmt.Sprintf("line %d: %s by %s", lines[i].Index+1, kind, d.Rule), parent)
	}
}
