// Package fs provides file system adapters that expand declared inputs and inspect outputs.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// Walker provides file walking functionality.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker that skips entries whose name matches one of ignores.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: slices.Clone(ignores)}
}

// WalkFiles yields every regular file under root in lexical order.
// Paths are joined to root. Unreadable entries end the walk.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && w.ignored(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(name string) bool {
	for _, pattern := range w.ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
