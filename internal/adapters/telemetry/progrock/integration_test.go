package progrock_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/ledger/internal/adapters/telemetry/progrock"
	"go.trai.ch/ledger/internal/core/domain"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, debug := recorder.Record(ctx, "configure debug")
	debug.Log(domain.LogLevelInfo, "registered 4 producers")
	debug.Log(domain.LogLevelWarn, "BUNDLE transformed before any producer")
	debug.Complete(nil)

	_, release := recorder.Record(ctx, "configure release")
	release.Cached()
	release.Complete(nil)

	_, broken := recorder.Record(ctx, "configure broken")
	broken.Log(domain.LogLevelError, "duplicate initial producer")
	broken.Complete(errors.New("duplicate initial producer"))

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
