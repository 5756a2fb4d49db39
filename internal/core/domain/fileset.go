package domain

import (
	"iter"
	"path/filepath"
	"slices"
)

// FileSet is an ordered set of files together with the tasks that must run to produce them.
// Implementations resolve their files when read, never when constructed.
type FileSet interface {
	// Files returns the absolute paths in order, without duplicates.
	Files() []string
	// All iterates over Files.
	All() iter.Seq[string]
	// BuildDependencies returns the producing tasks, sorted.
	BuildDependencies() []TaskPath
	// IsEmpty reports whether Files is empty.
	IsEmpty() bool
}

// Source contributes files to a FileCollection.
type Source interface {
	files(baseDir string) []string
	dependencies() []TaskPath
}

type pathsSource []string

func (s pathsSource) files(baseDir string) []string {
	res := make([]string, 0, len(s))
	for _, p := range s {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		res = append(res, filepath.Clean(p))
	}
	return res
}

func (s pathsSource) dependencies() []TaskPath { return nil }

type setSource struct {
	set FileSet
}

func (s setSource) files(string) []string { return s.set.Files() }
func (s setSource) dependencies() []TaskPath { return s.set.BuildDependencies() }

// Paths is a Source of raw paths. Relative paths resolve against the collection's base directory.
func Paths(paths ...string) Source {
	return pathsSource(slices.Clone(paths))
}

// FromSet is a Source that reads another FileSet, carrying over its build dependencies.
func FromSet(set FileSet) Source {
	return setSource{set: set}
}

// FileCollection is the default FileSet: a union of sources plus explicit producing tasks.
// A FileCollection is never mutated after construction.
type FileCollection struct {
	baseDir string
	sources []Source
	builtBy []TaskPath
}

var _ FileSet = (*FileCollection)(nil)

// NewFileCollection creates a collection over sources, in order.
func NewFileCollection(baseDir string, sources ...Source) *FileCollection {
	return &FileCollection{
		baseDir: baseDir,
		sources: slices.Clone(sources),
	}
}

// EmptyFileSet returns a collection without files or dependencies.
func EmptyFileSet() *FileCollection {
	return &FileCollection{}
}

// WithBuiltBy returns a copy of the collection that also depends on tasks.
func (c *FileCollection) WithBuiltBy(tasks ...TaskPath) *FileCollection {
	builtBy := slices.Clone(c.builtBy)
	for _, t := range tasks {
		if !t.IsZero() {
			builtBy = append(builtBy, t)
		}
	}
	return &FileCollection{
		baseDir: c.baseDir,
		sources: c.sources,
		builtBy: builtBy,
	}
}

// Files resolves every source.
func (c *FileCollection) Files() []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, src := range c.sources {
		for _, f := range src.files(c.baseDir) {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			res = append(res, f)
		}
	}
	return res
}

// All iterates over the resolved files.
func (c *FileCollection) All() iter.Seq[string] {
	return slices.Values(c.Files())
}

// BuildDependencies returns the explicit producers and those of every nested set.
func (c *FileCollection) BuildDependencies() []TaskPath {
	deps := slices.Clone(c.builtBy)
	for _, src := range c.sources {
		deps = append(deps, src.dependencies()...)
	}
	return SortTaskPaths(deps)
}

// IsEmpty reports whether the collection resolves to no files.
func (c *FileCollection) IsEmpty() bool {
	return len(c.Files()) == 0
}

// SortTaskPaths sorts and de-duplicates paths in place and returns the result.
func SortTaskPaths(paths []TaskPath) []TaskPath {
	slices.SortFunc(paths, TaskPath.Compare)
	return slices.Compact(paths)
}
