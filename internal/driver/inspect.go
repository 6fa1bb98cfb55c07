package driver

import (
	"context"

	"reflow/internal/classify"
	"reflow/internal/diag"
	"reflow/internal/reflow"
	"reflow/internal/source"
	"reflow/internal/token"
)

// Inspection exposes the intermediate stages for one file.
type Inspection struct {
	FileSet   *source.FileSet
	File      *source.File
	Lines     []token.Line
	Decisions []classify.Decision
	Width     int
	Bag       *diag.Bag
}

// Inspect loads one file and runs the pipeline on it without writing
// anything; used by the tokenize and explain commands.
func Inspect(ctx context.Context, path string, opts Options) (*Inspection, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.LoadEncoded(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	res, err := reflow.File(ctx, file, opts.Reflow, reflow.Env{Reporter: &diag.BagReporter{Bag: bag}})
	if err != nil {
		return nil, err
	}
	return &Inspection{
		FileSet:   fs,
		File:      file,
		Lines:     res.Tokens,
		Decisions: res.Decisions,
		Width:     res.Width,
		Bag:       bag,
	}, nil
}
