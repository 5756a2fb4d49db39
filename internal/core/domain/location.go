package domain

import "go.trai.ch/zerr"

// LocationState is the binding phase of an output location.
type LocationState int

const (
	// LocationProvisional means the producer may still be relocated by a newer producer.
	LocationProvisional LocationState = iota
	// LocationFrozen means the location will not change again.
	LocationFrozen
)

// String returns the lowercase state name.
func (s LocationState) String() string {
	if s == LocationFrozen {
		return "frozen"
	}
	return "provisional"
}

// Location is the output cell a producer writes through.
// Paths are relative to the build directory.
type Location struct {
	Kind  Kind
	Path  string
	State LocationState
}

// NewLocation returns a provisional location.
func NewLocation(kind Kind, path string) Location {
	return Location{Kind: kind, Path: path, State: LocationProvisional}
}

// Relocate returns the location moved to path and frozen.
// A location can be relocated at most once.
func (l Location) Relocate(path string) (Location, error) {
	if l.State == LocationFrozen {
		err := zerr.With(zerr.Wrap(ErrLocationFrozen, "cannot relocate output"), "path", l.Path)
		return l, zerr.With(err, "requested_path", path)
	}
	return Location{Kind: l.Kind, Path: path, State: LocationFrozen}, nil
}
