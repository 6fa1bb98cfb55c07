package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"reflow/internal/diag"
	"reflow/internal/reflow"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	sampleIn  = "first line\nsecond line\n"
	sampleOut = "first line second\nline\n"
)

func softOptions(mode OutputMode) Options {
	ro := reflow.DefaultOptions()
	ro.Width = 20
	ro.PreserveBreaks = false
	return Options{Reflow: ro, Output: mode, Jobs: 2}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestReflowPathsWritesNumberedCopies(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.txt")
	writeFile(t, in, sampleIn)

	for n, want := range []string{"notes_1.txt", "notes_2.txt"} {
		results, err := ReflowPaths(context.Background(), []string{in}, softOptions(OutputNew))
		if err != nil {
			t.Fatalf("run %d: %v", n, err)
		}
		if len(results) != 1 || results[0].Err != nil {
			t.Fatalf("run %d: unexpected results %+v", n, results)
		}
		if got := filepath.Base(results[0].OutputPath); got != want {
			t.Fatalf("run %d: output path %q, want %q", n, got, want)
		}
		if got := readFile(t, results[0].OutputPath); got != sampleOut {
			t.Fatalf("run %d: output %q", n, got)
		}
	}
	if got := readFile(t, in); got != sampleIn {
		t.Fatalf("input modified: %q", got)
	}
}

func TestReflowPathsModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	writeFile(t, path, sampleIn)
	results, err := ReflowPaths(context.Background(), []string{path}, softOptions(OutputCheck))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !results[0].Changed || results[0].OutputPath != "" {
		t.Fatalf("check: %+v", results[0])
	}
	if got := readFile(t, path); got != sampleIn {
		t.Fatalf("check mode wrote the file: %q", got)
	}

	results, err = ReflowPaths(context.Background(), []string{path}, softOptions(OutputStdout))
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if got := string(results[0].Output); got != sampleOut {
		t.Fatalf("stdout output %q", got)
	}

	results, err = ReflowPaths(context.Background(), []string{path}, softOptions(OutputInPlace))
	if err != nil {
		t.Fatalf("inplace: %v", err)
	}
	if results[0].OutputPath != path || readFile(t, path) != sampleOut {
		t.Fatalf("inplace: %+v, content %q", results[0], readFile(t, path))
	}

	// второй проход ничего не меняет
	results, err = ReflowPaths(context.Background(), []string{path}, softOptions(OutputInPlace))
	if err != nil {
		t.Fatalf("inplace again: %v", err)
	}
	if results[0].Changed || results[0].OutputPath != "" {
		t.Fatalf("second pass should be a no-op: %+v", results[0])
	}
}

func TestReflowPathsKeepsLineEndingsAndEncoding(t *testing.T) {
	dir := t.TempDir()
	crlf := filepath.Join(dir, "crlf.txt")
	writeFile(t, crlf, strings.ReplaceAll(sampleIn, "\n", "\r\n"))

	results, err := ReflowPaths(context.Background(), []string{crlf}, softOptions(OutputStdout))
	if err != nil {
		t.Fatalf("crlf: %v", err)
	}
	if got, want := string(results[0].Output), strings.ReplaceAll(sampleOut, "\n", "\r\n"); got != want {
		t.Fatalf("crlf output %q, want %q", got, want)
	}

	latin := filepath.Join(dir, "latin.txt")
	writeFile(t, latin, "caf\xe9 line\nsecond line\n")
	opts := softOptions(OutputStdout)
	opts.Encoding = "latin1"
	results, err = ReflowPaths(context.Background(), []string{latin}, opts)
	if err != nil {
		t.Fatalf("latin1: %v", err)
	}
	if got := string(results[0].Output); got != "caf\xe9 line second\nline\n" {
		t.Fatalf("latin1 output %q", got)
	}
}

func TestReflowPathsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), sampleIn)
	writeFile(t, filepath.Join(dir, "sub", "a.md"), sampleIn)
	writeFile(t, filepath.Join(dir, "skip.go"), sampleIn)

	results, err := ReflowPaths(context.Background(), []string{dir}, softOptions(OutputCheck))
	if err != nil {
		t.Fatalf("ReflowPaths: %v", err)
	}
	var got []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	if diff := cmp.Diff([]string{"b.txt", "sub/a.md"}, got); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestReflowPathsInvalidPaths(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	writeFile(t, good, sampleIn)
	missing := filepath.Join(dir, "missing.txt")

	results, err := ReflowPaths(context.Background(), []string{missing, good}, softOptions(OutputCheck))
	if err != nil {
		t.Fatalf("ReflowPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	bad := results[1]
	if bad.Path != missing || bad.Err == nil || !bad.Failed() {
		t.Fatalf("missing path result: %+v", bad)
	}
	if items := bad.Bag.Items(); len(items) != 1 || items[0].Code != diag.IOInvalidPath {
		t.Fatalf("missing path diagnostics: %+v", items)
	}
	if results[0].Failed() {
		t.Fatalf("good file failed: %+v", results[0])
	}

	_, err = ReflowPaths(context.Background(), []string{missing}, softOptions(OutputCheck))
	if !errors.Is(err, ErrNoInputs) {
		t.Fatalf("only invalid paths: err = %v", err)
	}
	_, err = ReflowPaths(context.Background(), []string{t.TempDir()}, softOptions(OutputCheck))
	if !errors.Is(err, ErrNoInputs) {
		t.Fatalf("empty dir: err = %v", err)
	}
}

func TestReflowPathsEmptyFileWithAutoWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	writeFile(t, path, "")

	opts := softOptions(OutputCheck)
	opts.Reflow.Width = reflow.AutoWidth
	results, err := ReflowPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("ReflowPaths: %v", err)
	}
	if !errors.Is(results[0].Err, reflow.ErrEmptyInput) {
		t.Fatalf("err = %v", results[0].Err)
	}
	if items := results[0].Bag.Items(); len(items) != 1 || items[0].Code != diag.RflEmptyInput {
		t.Fatalf("diagnostics: %+v", items)
	}
}

func TestReflowPathsDecodeErrorAndBadOptions(t *testing.T) {
	opts := softOptions(OutputCheck)
	opts.Encoding = "no-such-encoding"
	if _, err := ReflowPaths(context.Background(), []string{"x"}, opts); err == nil {
		t.Fatalf("expected unknown encoding error")
	}
	opts = softOptions(OutputCheck)
	opts.Reflow.Width = -1
	if _, err := ReflowPaths(context.Background(), []string{"x"}, opts); !errors.Is(err, reflow.ErrInvalidWidth) {
		t.Fatalf("negative width: err = %v", err)
	}
}

func TestReflowPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, sampleIn)

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := softOptions(OutputStdout)
	opts.Cache = cache

	first, err := ReflowPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := ReflowPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first[0].Cached || !second[0].Cached {
		t.Fatalf("cached flags: first=%v second=%v", first[0].Cached, second[0].Cached)
	}
	if string(second[0].Output) != sampleOut || second[0].Stats != first[0].Stats {
		t.Fatalf("cached result differs: %+v", second[0])
	}

	opts.Reflow.Width = 30
	third, err := ReflowPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("third: %v", err)
	}
	if third[0].Cached {
		t.Fatalf("changed options must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	opts.Reflow.Width = 20
	fourth, err := ReflowPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("fourth: %v", err)
	}
	if fourth[0].Cached {
		t.Fatalf("DropAll should invalidate entries")
	}
}

func TestReflowPathsReportsProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, sampleIn)
	writeFile(t, b, sampleIn)

	ch := make(chan Event, 64)
	opts := softOptions(OutputCheck)
	opts.Progress = ChannelSink{Ch: ch}
	opts.Timings = true
	results, err := ReflowPaths(context.Background(), []string{a, b}, opts)
	if err != nil {
		t.Fatalf("ReflowPaths: %v", err)
	}
	close(ch)

	final := make(map[string]Status)
	queued := 0
	for ev := range ch {
		if ev.Status == StatusQueued {
			queued++
		}
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[ev.File] = ev.Status
		}
	}
	if queued != 2 || final[a] != StatusDone || final[b] != StatusDone {
		t.Fatalf("queued=%d final=%v", queued, final)
	}

	for _, r := range results {
		var found bool
		for _, d := range r.Bag.Items() {
			if d.Code == diag.ObsTimings && len(d.Notes) == 1 && strings.Contains(d.Notes[0].Msg, `"stages"`) {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: no timings diagnostic in %+v", r.Path, r.Bag.Items())
		}
		if len(r.Timing.Stages) == 0 {
			t.Fatalf("%s: empty timing report", r.Path)
		}
	}
}

func TestReflowPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReflowPaths(ctx, []string{"."}, softOptions(OutputCheck)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestOutputCandidate(t *testing.T) {
	got := outputCandidate(filepath.Join("dir", "notes.md"), "_", 3)
	if want := filepath.Join("dir", "notes_3.md"); got != want {
		t.Fatalf("candidate %q, want %q", got, want)
	}
	if got := outputCandidate("README", "-", 1); got != "README-1" {
		t.Fatalf("candidate %q", got)
	}
}

func TestWriteNewRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	orig := writeData
	t.Cleanup(func() { writeData = orig })
	diskFull := errors.New("no space left on device")
	writeData = func(f *os.File, data []byte) error {
		_, _ = f.Write(data[:len(data)/2])
		return diskFull
	}

	if _, err := writeNew(path, "", []byte(sampleOut), 0o644); !errors.Is(err, diskFull) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes_1.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("partial output left behind: %v", err)
	}

	writeData = orig
	got, err := writeNew(path, "", []byte(sampleOut), 0o644)
	if err != nil {
		t.Fatalf("writeNew: %v", err)
	}
	if want := filepath.Join(dir, "notes_1.txt"); got != want {
		t.Fatalf("wrote %q, want the freed name %q", got, want)
	}
}

func TestParseOutputMode(t *testing.T) {
	for in, want := range map[string]OutputMode{
		"":         OutputNew,
		"inplace":  OutputInPlace,
		"in-place": OutputInPlace,
		"STDOUT":   OutputStdout,
		"check":    OutputCheck,
	} {
		got, err := ParseOutputMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseOutputMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOutputMode("bogus"); err == nil {
		t.Fatalf("expected error for bogus mode")
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, sampleIn)

	opts := softOptions(OutputCheck)
	opts.Reflow.PreserveBreaks = true
	ins, err := Inspect(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(ins.Lines) != 2 || len(ins.Decisions) != 2 {
		t.Fatalf("lines=%d decisions=%d", len(ins.Lines), len(ins.Decisions))
	}
	if !ins.Decisions[0].Manual {
		t.Fatalf("first boundary should be kept: %+v", ins.Decisions[0])
	}
	if ins.Width != 20 || ins.File.Path == "" {
		t.Fatalf("unexpected inspection: %+v", ins)
	}
}
