// Package reports persists serialized artifact reports on disk.
package reports

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReportStore = (*Store)(nil)

const reportExt = ".json"

// Store implements ports.ReportStore with one JSON file per variant under a directory.
// Writes are skipped when the content fingerprint did not change.
type Store struct {
	dir string

	mu           sync.Mutex
	fingerprints map[string]uint64
}

// NewStore creates a new Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{
		dir:          filepath.Clean(dir),
		fingerprints: make(map[string]uint64),
	}
}

// At returns a Store rooted at dir.
func (s *Store) At(dir string) ports.ReportStore {
	return NewStore(dir)
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file holding the report of variant.
func (s *Store) Path(variant string) string {
	return filepath.Join(s.dir, variant+reportExt)
}

// Get retrieves the stored report of a variant.
func (s *Store) Get(variant string) ([]byte, error) {
	if err := validateVariant(variant); err != nil {
		return nil, err
	}

	//nolint:gosec // Path is cleaned and the variant name is validated
	data, err := os.ReadFile(s.Path(variant))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read report"), "variant", variant)
	}

	s.mu.Lock()
	s.fingerprints[variant] = xxhash.Sum64(data)
	s.mu.Unlock()
	return data, nil
}

// Put stores the report of a variant unless the stored report has the same content.
func (s *Store) Put(variant string, data []byte) (bool, error) {
	if err := validateVariant(variant); err != nil {
		return false, err
	}

	sum := xxhash.Sum64(data)
	previous, ok, err := s.fingerprint(variant)
	if err != nil {
		return false, err
	}
	if ok && previous == sum {
		return false, nil
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return false, zerr.Wrap(err, "failed to create reports directory")
	}
	if err := writeAtomic(s.Path(variant), data); err != nil {
		return false, zerr.With(err, "variant", variant)
	}

	s.mu.Lock()
	s.fingerprints[variant] = sum
	s.mu.Unlock()
	return true, nil
}

// fingerprint returns the hash of the stored report, reading it from disk when the store
// has not seen it yet.
func (s *Store) fingerprint(variant string) (uint64, bool, error) {
	s.mu.Lock()
	sum, ok := s.fingerprints[variant]
	s.mu.Unlock()
	if ok {
		return sum, true, nil
	}

	data, err := s.Get(variant)
	if err != nil || data == nil {
		return 0, false, err
	}
	return xxhash.Sum64(data), true, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary report file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write report")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close report")
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to set report permissions")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.Wrap(err, "failed to move report into place")
	}
	return nil
}

func validateVariant(variant string) error {
	if variant == "" || variant == "." || variant == ".." || strings.ContainsAny(variant, `/\`) {
		return zerr.With(zerr.Wrap(domain.ErrUnknownVariant, "invalid variant name for report"), "variant", variant)
	}
	return nil
}
