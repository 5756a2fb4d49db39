package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/adapters/telemetry"
	"go.trai.ch/ledger/internal/core/domain"
)

func TestNoOp(t *testing.T) {
	var tel telemetry.NoOp
	ctx := context.Background()

	got, vertex := tel.Record(ctx, "debug")
	assert.Equal(t, ctx, got)
	require.NotNil(t, vertex)

	vertex.Log(domain.LogLevelInfo, "ignored")
	vertex.Cached()
	vertex.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Close())
}
