package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputInspector = (*Inspector)(nil)

// Inspector reports whether artifact files exist and fingerprints their content.
type Inspector struct {
	hasher *Hasher
}

// NewInspector creates a new Inspector.
func NewInspector(hasher *Hasher) *Inspector {
	return &Inspector{hasher: hasher}
}

// Inspect stats path and, when it exists, hashes the file or the whole directory tree.
func (i *Inspector) Inspect(path string) (domain.OutputStatus, error) {
	status := domain.OutputStatus{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return status, nil
		}
		return status, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
	}
	status.Exists = true

	if info.IsDir() {
		status.IsDir = true
		status.Digest, status.Files, err = i.hasher.ComputeTreeHash(path)
		if err != nil {
			return domain.OutputStatus{Path: path}, err
		}
		return status, nil
	}

	sum, err := i.hasher.ComputeFileHash(path)
	if err != nil {
		return domain.OutputStatus{Path: path}, err
	}
	status.Files = 1
	status.Digest = formatDigest(sum)
	return status, nil
}
