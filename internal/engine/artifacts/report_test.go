package artifacts_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/engine/artifacts"
)

func newCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	catalog, err := domain.NewCatalog()
	require.NoError(t, err)
	return catalog
}

func populatedHolder(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	h := f.holder

	_, err := h.CreateDirectory(domain.JavacClasses, domain.OperationInitial, task1, "foo")
	require.NoError(t, err)
	_, err = h.CreateDirectory(domain.JavacClasses, domain.OperationAppend, task2, "bar")
	require.NoError(t, err)

	_, err = h.CreateArtifactFile(domain.Bundle, domain.OperationInitial, task1, "app.aab")
	require.NoError(t, err)
	_, err = h.CreateArtifactFile(domain.Bundle, domain.OperationTransform, task2, "signed.aab")
	require.NoError(t, err)

	_, err = h.CreateBuildableArtifact(domain.JavaResources, domain.OperationAppend, domain.TaskPath{},
		domain.Paths("src/main/resources"))
	require.NoError(t, err)
	return f
}

func TestHolder_CreateReport(t *testing.T) {
	f := populatedHolder(t)

	report := f.holder.CreateReport()
	require.Len(t, report, 3)

	javac := report[domain.JavacClasses]
	require.Len(t, javac, 2)
	assert.Equal(t, []string{f.file("task1", "foo")}, javac[0].Files)
	assert.Equal(t, []string{"task1"}, javac[0].BuiltBy)
	assert.Equal(t, []string{f.file("task1", "foo"), f.file("task2", "bar")}, javac[1].Files)
	assert.Equal(t, []string{"task1", "task2"}, javac[1].BuiltBy)

	bundle := report[domain.Bundle]
	require.Len(t, bundle, 2)
	assert.Equal(t, []string{"task2"}, bundle[1].BuiltBy)
	assert.Len(t, bundle[1].Files, 1)

	resources := report[domain.JavaResources]
	require.Len(t, resources, 1)
	assert.Empty(t, resources[0].BuiltBy)
	assert.NotNil(t, resources[0].BuiltBy)
}

func TestReport_RoundTrip(t *testing.T) {
	f := populatedHolder(t)
	report := f.holder.CreateReport()

	var buf bytes.Buffer
	require.NoError(t, artifacts.WriteReport(&buf, report))

	parsed, err := artifacts.ReadReport(&buf, newCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, report, parsed)
}

func TestReport_MarshalIsStable(t *testing.T) {
	report := populatedHolder(t).holder.CreateReport()

	first, err := artifacts.MarshalReport(report)
	require.NoError(t, err)
	second, err := artifacts.MarshalReport(report)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"builtBy"`)
	assert.Contains(t, string(first), `"JAVAC_CLASSES"`)
}

func TestParseReport_LegacyFileEntries(t *testing.T) {
	data := []byte(`{
  "BUNDLE": [
    {"files": [{"path": "/out/a.aab"}, "/out/b.aab"], "builtBy": [":app:bundleDebug"]}
  ]
}`)

	report, err := artifacts.ParseReport(data, newCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, domain.Report{
		domain.Bundle: {
			{Files: []string{"/out/a.aab", "/out/b.aab"}, BuiltBy: []string{":app:bundleDebug"}},
		},
	}, report)
}

func TestParseReport_CustomType(t *testing.T) {
	custom := domain.ArtifactType{Name: "SIGNING_CONFIG", Category: domain.CategoryIntermediates, Kind: domain.KindFile}
	catalog, err := domain.NewCatalog(custom)
	require.NoError(t, err)

	report, err := artifacts.ParseReport([]byte(`{"SIGNING_CONFIG": [{"files": [], "builtBy": []}]}`), catalog)
	require.NoError(t, err)
	require.Contains(t, report, custom)
	assert.Equal(t, []string{}, report[custom][0].Files)
}

func TestParseReport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "invalid json",
			data:    `{"BUNDLE": [`,
			wantErr: domain.ErrMalformedReport,
		},
		{
			name:    "files is not an array",
			data:    `{"BUNDLE": [{"files": "a", "builtBy": []}]}`,
			wantErr: domain.ErrMalformedReport,
		},
		{
			name:    "missing builtBy",
			data:    `{"BUNDLE": [{"files": []}]}`,
			wantErr: domain.ErrMalformedReport,
		},
		{
			name:    "history is not an array",
			data:    `{"BUNDLE": {}}`,
			wantErr: domain.ErrMalformedReport,
		},
		{
			name:    "unknown artifact type",
			data:    `{"NOT_A_TYPE": []}`,
			wantErr: domain.ErrUnknownArtifactType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := artifacts.ParseReport([]byte(tt.data), newCatalog(t))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarshalReport_RejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data domain.ArtifactData
	}{
		{
			name: "file",
			data: domain.ArtifactData{Files: []string{"/out/a\xffb.aab"}, BuiltBy: []string{":app:bundle"}},
		},
		{
			name: "producer",
			data: domain.ArtifactData{Files: []string{"/out/a.aab"}, BuiltBy: []string{":app:\xfe"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := domain.Report{domain.Bundle: {tt.data}}

			_, err := artifacts.MarshalReport(report)
			require.ErrorIs(t, err, domain.ErrMalformedReport)

			var buf bytes.Buffer
			require.ErrorIs(t, artifacts.WriteReport(&buf, report), domain.ErrMalformedReport)
			assert.Zero(t, buf.Len())
		})
	}
}
