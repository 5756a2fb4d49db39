package artifacts

import (
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/ledger/internal/core/domain"
)

// Output is the handle a producer writes through.
// Its path is read from the holder on every call, so it follows relocations that happen
// after the handle was returned.
type Output struct {
	holder   *Holder
	slot     int
	producer domain.TaskPath
}

var _ domain.FileSet = (*Output)(nil)

// Location returns the current binding of the output.
func (o *Output) Location() domain.Location {
	return o.holder.location(o.slot)
}

// RelativePath returns the output path relative to the build directory.
func (o *Output) RelativePath() string {
	return o.Location().Path
}

// Path returns the absolute output path.
func (o *Output) Path() string {
	return filepath.Join(o.holder.buildDir(), o.RelativePath())
}

// Kind returns whether the output is a file or a directory.
func (o *Output) Kind() domain.Kind {
	return o.Location().Kind
}

// Producer returns the task writing this output.
func (o *Output) Producer() domain.TaskPath {
	return o.producer
}

// Files returns the single output path.
func (o *Output) Files() []string {
	return []string{o.Path()}
}

// All iterates over Files.
func (o *Output) All() iter.Seq[string] {
	return slices.Values(o.Files())
}

// BuildDependencies returns the producing task.
func (o *Output) BuildDependencies() []domain.TaskPath {
	if o.producer.IsZero() {
		return nil
	}
	return []domain.TaskPath{o.producer}
}

// IsEmpty is always false.
func (o *Output) IsEmpty() bool {
	return false
}
