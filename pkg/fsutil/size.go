// Package fsutil provides filesystem sizing helpers.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DirSizeBytes returns the total size in bytes of all regular files
// under path, following the tree recursively. A plain file reports its
// own size. Unreadable entries are skipped rather than failing the
// walk; a missing path reports zero.
func DirSizeBytes(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}

	var total int64
	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if fi, err := d.Info(); err == nil {
				total += fi.Size()
			}
		}
		return nil
	})
	return total
}

// DirSizeKiB returns the recursive size of path in kibibytes,
// truncating any sub-KiB remainder.
func DirSizeKiB(path string) int64 {
	return DirSizeBytes(path) / 1024
}

// GlobSizeBytes sums the sizes of all files matching pattern.
// Matches that are directories are sized recursively.
func GlobSizeBytes(pattern string) int64 {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0
	}
	var total int64
	for _, m := range matches {
		total += DirSizeBytes(m)
	}
	return total
}
