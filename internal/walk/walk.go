// Package walk produces the flat list of regular files a scan
// fingerprints. Traversal never aborts on an unreadable entry; skips
// are reported alongside the files so callers can surface them.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotDirectory reports a scan root that is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is one regular file found during traversal.
type File struct {
	Path string
	Size int64
}

// Skip records a directory entry the walk could not read.
type Skip struct {
	Path string
	Err  error
}

// Result holds everything one traversal found. Root is the absolute,
// cleaned form of the requested scan root.
type Result struct {
	Root    string
	Files   []File
	Skipped []Skip
}

// Paths returns the file paths in walk order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Path
	}
	return paths
}

// Sizes returns a path-to-size index of the files found.
func (r *Result) Sizes() map[string]int64 {
	sizes := make(map[string]int64, len(r.Files))
	for _, f := range r.Files {
		sizes[f.Path] = f.Size
	}
	return sizes
}

// Collect walks root and returns every regular file beneath it as an
// absolute path. Inaccessible entries are recorded as skips and never
// abort the walk; only an unusable root is fatal. Symlinks, devices,
// and other non-regular entries are ignored. Entries whose base name
// matches one of the exclude globs are skipped, directories along
// with their whole subtree.
func Collect(root string, exclude []string) (*Result, error) {
	for _, pattern := range exclude {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absRoot)
	}

	res := &Result{Root: absRoot}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry or subtree: record it and move on.
			res.Skipped = append(res.Skipped, Skip{Path: path, Err: err})
			return nil
		}
		if path != absRoot && excluded(d.Name(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Path: path, Err: err})
			return nil
		}
		res.Files = append(res.Files, File{Path: path, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
