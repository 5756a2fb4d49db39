package artifacts

import (
	"path/filepath"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/zerr"
)

// Only the last producer of an artifact type writes to the requested location. Every
// producer it supersedes is moved under
//
//	intermediates/<type>/<holder id>/<task name>/<file name>
//
// which is safe because locations are bound before any task executes.

// planLocation demotes the current last producer of rec, if any, and returns the path the
// new producer of t should write to. It must be called with h.mu held.
func (h *Holder) planLocation(rec *record, t domain.ArtifactType, label domain.TaskPath, requested string) (string, error) {
	if rec != nil && rec.lastProducer != nil {
		prev := rec.lastProducer
		if err := h.relocate(prev.slot, h.intermediatesPath(t, prev.label, prev.fileName)); err != nil {
			return "", zerr.With(err, "superseded_by", label.String())
		}
	}

	if rec == nil || rec.size() == 0 || t.Category != domain.CategoryIntermediates {
		return requested, nil
	}
	return h.intermediatesPath(t, label, filepath.Base(requested)), nil
}

// intermediatesPath is the location of a producer that is, or may become, superseded.
func (h *Holder) intermediatesPath(t domain.ArtifactType, label domain.TaskPath, fileName string) string {
	return filepath.Join(
		domain.CategoryIntermediates.OutputPath(),
		t.DirName(),
		h.id,
		label.Name(),
		fileName,
	)
}

// defaultLocation is the requested location of a producer that only names its output.
func (h *Holder) defaultLocation(t domain.ArtifactType, fileName string) string {
	return filepath.Join(t.OutputPath(), t.DirName(), h.id, fileName)
}

// allocate stores a new provisional location and returns its slot.
func (h *Holder) allocate(kind domain.Kind, path string) int {
	h.locMu.Lock()
	defer h.locMu.Unlock()

	h.locations = append(h.locations, domain.NewLocation(kind, path))
	return len(h.locations) - 1
}

// relocate moves and freezes the location in slot.
func (h *Holder) relocate(slot int, path string) error {
	h.locMu.Lock()
	defer h.locMu.Unlock()

	moved, err := h.locations[slot].Relocate(path)
	if err != nil {
		return err
	}
	h.locations[slot] = moved
	return nil
}

func (h *Holder) location(slot int) domain.Location {
	h.locMu.RLock()
	defer h.locMu.RUnlock()

	return h.locations[slot]
}
