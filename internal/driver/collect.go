package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoInputs is returned when none of the given paths yields a file.
var ErrNoInputs = errors.New("no valid input files")

// DefaultExtensions are collected when walking directories.
var DefaultExtensions = []string{".txt", ".md", ".text"}

type invalidPath struct {
	path string
	err  error
}

// collectInputs expands paths into a sorted, de-duplicated file list. Explicit
// files are taken as given; directories are walked and filtered by extension.
// Paths that cannot be used are returned separately instead of failing the run.
func collectInputs(ctx context.Context, paths, exts []string) ([]string, []invalidPath, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	var invalid []invalidPath
	seen := make(map[string]struct{})
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			invalid = append(invalid, invalidPath{path: p, err: err})
			continue
		}
		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				invalid = append(invalid, invalidPath{path: p, err: fmt.Errorf("not a regular file")})
				continue
			}
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.Type().IsRegular() && hasExt(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			invalid = append(invalid, invalidPath{path: p, err: err})
		}
	}

	slices.Sort(files)
	return files, invalid, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
