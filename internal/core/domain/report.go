package domain

import (
	"slices"
	"strings"
)

// ArtifactData is one history entry of an artifact type, as persisted.
type ArtifactData struct {
	Files   []string `json:"files"`
	BuiltBy []string `json:"builtBy"`
}

// Report maps every artifact type of a holder to its history, oldest first.
type Report map[ArtifactType][]ArtifactData

// Types returns the report's artifact types sorted by name.
func (r Report) Types() []ArtifactType {
	res := make([]ArtifactType, 0, len(r))
	for t := range r {
		res = append(res, t)
	}
	slices.SortFunc(res, func(a, b ArtifactType) int { return strings.Compare(a.Name, b.Name) })
	return res
}
