package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
)

// hashCacheSize bounds the number of file hashes kept between calls.
const hashCacheSize = 4096

// cachedHash is valid while the file keeps the size and modification time it was hashed at.
type cachedHash struct {
	size    int64
	modTime time.Time
	sum     uint64
}

// Hasher fingerprints files and directory trees with XXHash.
type Hasher struct {
	walker *Walker
	cache  *lru.Cache[string, cachedHash]
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	cache, _ := lru.New[string, cachedHash](hashCacheSize) //nolint:errcheck // Only fails for a non-positive size
	return &Hasher{walker: walker, cache: cache}
}

// ComputeFileHash computes the XXHash of a file's content. Unchanged files are served
// from the cache.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if c, ok := h.cache.Get(path); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		return c.sum, nil
	}

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	sum := hasher.Sum64()
	h.cache.Add(path, cachedHash{size: info.Size(), modTime: info.ModTime(), sum: sum})
	return sum, nil
}

// ComputeTreeHash hashes every file under dir together with its path relative to dir,
// so moving the tree keeps its digest. It returns the digest and the number of files.
func (h *Hasher) ComputeTreeHash(dir string) (string, int, error) {
	hasher := xxhash.New()
	count := 0
	for path := range h.walker.WalkFiles(dir) {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return "", 0, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", 0, err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", 0, zerr.Wrap(err, "failed to write hash to digest")
		}
		count++
	}
	return formatDigest(hasher.Sum64()), count, nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
