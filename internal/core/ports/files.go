package ports

import "go.trai.ch/ledger/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=files.go -destination=mocks/mock_files.go -package=mocks

// InputResolver expands the source paths a producer declares.
type InputResolver interface {
	// ResolveInputs expands glob patterns against root. Literal paths are returned unchanged.
	ResolveInputs(patterns []string, root string) ([]string, error)
}

// OutputInspector examines artifact files on disk.
type OutputInspector interface {
	// Inspect returns the state of path. A missing path is not an error.
	Inspect(path string) (domain.OutputStatus, error)
}
