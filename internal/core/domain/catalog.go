package domain

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// Catalog maps artifact type names to artifact types.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]ArtifactType
}

// NewCatalog creates a catalog holding the built-in artifact types and the given extras.
func NewCatalog(extra ...ArtifactType) (*Catalog, error) {
	c := &Catalog{types: make(map[string]ArtifactType)}
	for _, t := range BuiltinArtifactTypes() {
		c.types[t.Name] = t
	}
	for _, t := range extra {
		if err := c.Register(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds an artifact type. Registering an identical type again is a no-op.
func (c *Catalog) Register(t ArtifactType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.types[t.Name]; ok {
		if existing != t {
			err := zerr.With(zerr.Wrap(ErrArtifactTypeConflict, "cannot register artifact type"), "artifact", t.Name)
			err = zerr.With(err, "existing_category", existing.Category.String())
			return zerr.With(err, "existing_kind", existing.Kind.String())
		}
		return nil
	}
	c.types[t.Name] = t
	return nil
}

// Lookup returns the artifact type registered under name.
// Lookup is case-insensitive.
func (c *Catalog) Lookup(name string) (ArtifactType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[strings.ToUpper(name)]
	if !ok {
		return ArtifactType{}, zerr.With(zerr.Wrap(ErrUnknownArtifactType, "lookup failed"), "artifact", name)
	}
	return t, nil
}

// All returns every registered artifact type sorted by name.
func (c *Catalog) All() []ArtifactType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]ArtifactType, 0, len(c.types))
	for _, t := range c.types {
		res = append(res, t)
	}
	slices.SortFunc(res, func(a, b ArtifactType) int { return strings.Compare(a.Name, b.Name) })
	return res
}
