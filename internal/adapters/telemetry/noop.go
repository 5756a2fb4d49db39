// Package telemetry provides telemetry adapters for pipeline planning.
package telemetry

import (
	"context"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
)

var _ ports.Telemetry = NoOp{}

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// Record returns ctx unchanged and a vertex that discards everything.
func (NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noOpVertex{}
}

// Close does nothing.
func (NoOp) Close() error { return nil }

type noOpVertex struct{}

func (noOpVertex) Log(domain.LogLevel, string) {}
func (noOpVertex) Complete(error)              {}
func (noOpVertex) Cached()                     {}
