package artifacts

import (
	"iter"

	"go.trai.ch/ledger/internal/core/domain"
)

// FinalView resolves to the latest output of an artifact type every time it is read.
// It does not matter when the view was obtained, only when it is read.
type FinalView struct {
	holder   *Holder
	artifact domain.ArtifactType
}

var _ domain.FileSet = (*FinalView)(nil)

// Artifact returns the artifact type the view tracks.
func (v *FinalView) Artifact() domain.ArtifactType {
	return v.artifact
}

// Files returns the files of the latest output.
func (v *FinalView) Files() []string {
	return v.final().Files()
}

// All iterates over the files of the latest output.
func (v *FinalView) All() iter.Seq[string] {
	return v.final().All()
}

// BuildDependencies returns the producers of the latest output.
func (v *FinalView) BuildDependencies() []domain.TaskPath {
	return v.final().BuildDependencies()
}

// IsEmpty reports whether the latest output has no files.
func (v *FinalView) IsEmpty() bool {
	return v.final().IsEmpty()
}

func (v *FinalView) final() domain.FileSet {
	return v.holder.latest(v.artifact)
}
