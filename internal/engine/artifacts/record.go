package artifacts

import "go.trai.ch/ledger/internal/core/domain"

// record is the per-artifact-type state owned by a Holder.
// It is only touched with the holder's lock held.
type record struct {
	artifact domain.ArtifactType

	// history holds one entry per mutating call, oldest first. Only the last entry is
	// the current output; the others are kept for reports and diagnostics.
	history []*domain.FileCollection

	// lastProducer is the producer behind the last entry, nil when the last entry was
	// registered from raw files or another file set.
	lastProducer *producerRef

	// empty is returned as the current output while history is empty.
	empty *domain.FileCollection
}

// producerRef points back into the holder's location arena.
type producerRef struct {
	slot     int
	label    domain.TaskPath
	fileName string
}

func newRecord(t domain.ArtifactType) *record {
	return &record{
		artifact: t,
		empty:    domain.EmptyFileSet(),
	}
}

func (r *record) add(entry *domain.FileCollection, p *producerRef) {
	r.history = append(r.history, entry)
	r.lastProducer = p
}

func (r *record) last() *domain.FileCollection {
	if len(r.history) == 0 {
		return r.empty
	}
	return r.history[len(r.history)-1]
}

func (r *record) size() int {
	return len(r.history)
}
