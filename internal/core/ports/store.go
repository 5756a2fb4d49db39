package ports

// ReportStore persists serialized artifact reports, one per variant.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get returns the stored report of a variant.
	// Returns nil, nil if not found.
	Get(variant string) ([]byte, error)

	// Put stores the report of a variant. It reports whether the stored content changed.
	Put(variant string, data []byte) (bool, error)

	// At returns a store of the same kind rooted at dir.
	At(dir string) ReportStore

	// Dir returns the directory the store writes to.
	Dir() string
}
