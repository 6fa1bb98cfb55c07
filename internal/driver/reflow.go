package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"reflow/internal/diag"
	"reflow/internal/observ"
	"reflow/internal/reflow"
	"reflow/internal/source"
	"reflow/internal/trace"
)

// Options configures ReflowPaths.
type Options struct {
	Reflow     reflow.Options
	Output     OutputMode
	Suffix     string   // for OutputNew, DefaultSuffix when empty
	Extensions []string // for directory walks, DefaultExtensions when empty
	Encoding   string   // on-disk encoding of inputs and outputs, utf-8 when empty
	Jobs       int      // 0 means GOMAXPROCS

	MaxDiagnostics int
	Timings        bool

	Cache    *DiskCache
	Progress ProgressSink
}

// Result captures the outcome for a single input.
type Result struct {
	Path       string
	OutputPath string // set when a file was written
	Changed    bool
	Output     []byte // encoded output, for OutputStdout
	FileSet    *source.FileSet
	Bag        *diag.Bag
	Stats      reflow.Stats
	Width      int
	Timing     observ.Report
	Cached     bool
	Err        error
}

// Failed reports whether the file could not be reflowed or written.
func (r *Result) Failed() bool {
	return r.Err != nil || r.Bag.HasErrors()
}

// ReflowPaths reflows the given files and directories (directories are walked
// recursively). Files are processed in parallel; results are sorted by path.
// Per-file problems land in Result.Err and Result.Bag; the returned error is
// reserved for cancellation and for having no usable inputs at all.
func ReflowPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Reflow.Width < 0 {
		return nil, fmt.Errorf("%w: got %d", reflow.ErrInvalidWidth, opts.Reflow.Width)
	}
	if _, _, err := source.LookupEncoding(opts.Encoding); err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "reflow_paths")
	defer span.End("")

	files, invalid, err := collectInputs(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 && len(invalid) == 0 {
		return nil, ErrNoInputs
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	results := make([]Result, len(files), len(files)+len(invalid))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	err = forEachFile(ctx, files, opts.Jobs, func(ctx context.Context, i int, path string) error {
		results[i] = reflowFile(ctx, path, opts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ip := range invalid {
		results = append(results, invalidResult(ip, opts.MaxDiagnostics))
	}
	sortResults(results)

	if len(files) == 0 {
		return results, ErrNoInputs
	}
	return results, nil
}

func reflowFile(ctx context.Context, path string, opts Options) Result {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", path)

	started := time.Now()
	res := Result{
		Path:    path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	finish := func(st Status, err error) Result {
		res.Err = err
		emit(opts.Progress, Event{File: path, Status: st, Err: err, Elapsed: time.Since(started)})
		span.End(string(st))
		return res
	}

	timer := observ.NewTimer()
	reporter := &diag.BagReporter{Bag: res.Bag}

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	done := timer.Track(string(StageLoad))
	id, err := res.FileSet.LoadEncoded(path, opts.Encoding)
	done("")
	if err != nil {
		code := diag.IOLoadFileError
		if isDecodeError(err) {
			code = diag.IODecodeError
		}
		stub := res.FileSet.AddVirtual(path, nil)
		diag.ReportError(reporter, code, source.Span{File: stub}, err.Error()).Emit()
		return finish(StatusError, err)
	}
	file := res.FileSet.Get(id)

	var key CacheKey
	if opts.Cache != nil {
		key = KeyFor(file, opts.Reflow, opts.Output)
		var cached CachedFile
		if ok, cerr := opts.Cache.Get(key, &cached); cerr == nil && ok {
			res.Cached = true
			res.Changed = cached.Changed
			res.Stats = cached.Stats
			res.Width = cached.Width
			restoreDiags(res.Bag, id, cached.Diags)
			if err := deliver(ctx, &res, file, cached.Output, timer, opts); err != nil {
				return finish(StatusError, err)
			}
			res.Timing = timer.Report()
			return finish(StatusDone, nil)
		}
	}

	env := reflow.Env{
		Reporter: reporter,
		Timer:    timer,
		OnStage: func(stage string) {
			if stage == reflow.StageLoad {
				return
			}
			emit(opts.Progress, Event{File: path, Stage: Stage(stage), Status: StatusWorking})
		},
	}
	out, err := reflow.File(ctx, file, opts.Reflow, env)
	if err != nil {
		if errors.Is(err, reflow.ErrEmptyInput) {
			diag.ReportWarning(reporter, diag.RflEmptyInput, source.Span{File: id},
				"nothing to reflow: the file has no non-empty lines").Emit()
		}
		return finish(StatusError, err)
	}
	res.Stats = out.Stats
	res.Width = out.Width

	text := []byte(out.Text())
	res.Changed = !bytes.Equal(text, file.Content)
	encoded, err := encodeOutput(text, file)
	if err != nil {
		diag.ReportError(reporter, diag.IOWriteError, source.Span{File: id}, err.Error()).Emit()
		return finish(StatusError, err)
	}

	if opts.Cache != nil {
		// ошибки кэша не должны ронять обработку файла
		_ = opts.Cache.Put(key, &CachedFile{
			Output:  encoded,
			Changed: res.Changed,
			Width:   res.Width,
			Stats:   res.Stats,
			Diags:   cacheDiags(res.Bag),
		})
	}

	if err := deliver(ctx, &res, file, encoded, timer, opts); err != nil {
		return finish(StatusError, err)
	}
	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{Path: path, Report: res.Timing})
	}
	return finish(StatusDone, nil)
}

// deliver sends encoded output where opts.Output says.
func deliver(ctx context.Context, res *Result, file *source.File, encoded []byte, timer *observ.Timer, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch opts.Output {
	case OutputCheck:
		return nil
	case OutputStdout:
		res.Output = encoded
		return nil
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageWrite, Status: StatusWorking})
	done := timer.Track(string(StageWrite))
	var err error
	switch opts.Output {
	case OutputInPlace:
		if !res.Changed {
			done("unchanged")
			return nil
		}
		err = writeInPlace(res.Path, encoded)
		if err == nil {
			res.OutputPath = res.Path
		}
	default:
		perm := fs.FileMode(0o644)
		if info, statErr := os.Stat(res.Path); statErr == nil {
			perm = info.Mode().Perm()
		}
		res.OutputPath, err = writeNew(res.Path, opts.Suffix, encoded, perm)
	}
	done(res.OutputPath)
	if err != nil {
		diag.ReportError(&diag.BagReporter{Bag: res.Bag}, diag.IOWriteError, source.Span{File: file.ID}, err.Error()).Emit()
	}
	return err
}

// encodeOutput restores what loading normalized away: CRLF endings, the BOM
// and the on-disk encoding.
func encodeOutput(text []byte, file *source.File) ([]byte, error) {
	if file.Flags&source.FileNormalizedCRLF != 0 {
		text = bytes.ReplaceAll(text, []byte("\n"), []byte("\r\n"))
	}
	out, err := source.Encode(text, file.Encoding)
	if err != nil {
		return nil, err
	}
	if file.Flags&source.FileHadBOM != 0 && file.Encoding == source.DefaultEncoding {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out, nil
}

// isDecodeError tells transcoding failures from I/O ones: the latter come
// from the filesystem as *fs.PathError.
func isDecodeError(err error) bool {
	var pathErr *fs.PathError
	return !errors.As(err, &pathErr)
}

func invalidResult(ip invalidPath, maxDiagnostics int) Result {
	res := Result{
		Path:    ip.path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(maxDiagnostics),
		Err:     ip.err,
	}
	id := res.FileSet.AddVirtual(ip.path, nil)
	diag.ReportError(&diag.BagReporter{Bag: res.Bag}, diag.IOInvalidPath, source.Span{File: id},
		"invalid path: "+ip.err.Error()).Emit()
	return res
}
