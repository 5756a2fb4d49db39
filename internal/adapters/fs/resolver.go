package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands glob patterns against root, in pattern order with each pattern's
// matches sorted. Literal paths are kept as declared since sources may not exist yet.
// A pattern without matches contributes nothing.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}
		matches, globErr := filepath.Glob(path)
		if globErr != nil {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "failed to glob path"), "pattern", pattern)
			return nil, zerr.With(err, "reason", globErr.Error())
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return result, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
