// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/ledger/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// Each recorded vertex is one configured variant.
type Recorder struct {
	w     progrock.Writer
	rec   *progrock.Recorder
	scope string
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape(), "ledger")
}

// NewRecorder creates a new Recorder with the given writer. scope prefixes vertex
// digests so that recorders sharing a writer do not collide.
func NewRecorder(w progrock.Writer, scope string) *Recorder {
	return &Recorder{
		w:     w,
		rec:   progrock.NewRecorder(w),
		scope: scope,
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(r.scope + "/" + name)
	return ctx, &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
