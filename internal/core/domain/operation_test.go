package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func TestParseOperationType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.OperationType
	}{
		{"initial", domain.OperationInitial},
		{"APPEND", domain.OperationAppend},
		{" transform ", domain.OperationTransform},
		{"replace", domain.OperationTransform},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseOperationType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseOperationType("merge")
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestOperationType_Validate(t *testing.T) {
	require.NoError(t, domain.OperationAppend.Validate())
	require.ErrorIs(t, domain.OperationType(0).Validate(), domain.ErrUnsupportedOperation)
	require.ErrorIs(t, domain.OperationType(42).Validate(), domain.ErrUnsupportedOperation)
	assert.Equal(t, "unsupported", domain.OperationType(42).String())
}

func TestOperationType_YAML(t *testing.T) {
	var doc struct {
		Op domain.OperationType `yaml:"op"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("op: transform"), &doc))
	assert.Equal(t, domain.OperationTransform, doc.Op)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "op: transform\n", string(out))

	require.Error(t, yaml.Unmarshal([]byte("op: merge"), &doc))
}
