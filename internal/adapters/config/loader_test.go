package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/adapters/config"
	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load_Success(t *testing.T) {
	path := writeConfig(t, `
version: "1"
project: app
buildDir: out
variants: [debug, release]
artifactTypes:
  signing_config:
    category: intermediates
    kind: file
tasks:
  - name: compile
    produces:
      - artifact: JAVAC_CLASSES
        operation: initial
        directory: classes
  - name: kapt
    produces:
      - artifact: javac_classes
        operation: append
        directory: ""
  - name: resources
    produces:
      - artifact: JAVA_RESOURCES
        operation: initial
        paths: ["src/main/resources"]
  - name: sign
    produces:
      - artifact: SIGNING_CONFIG
        operation: initial
        location: signing/config.json
  - name: bundle
    produces:
      - artifact: BUNDLE
        operation: initial
        file: app.aab
    consumes: [JAVAC_CLASSES, JAVA_RESOURCES]
`)

	pipeline, err := newLoader(t).Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, "app", pipeline.Project)
	assert.Equal(t, filepath.Join(dir, "out"), pipeline.BuildDir)
	assert.Equal(t, []string{"debug", "release"}, pipeline.Variants)
	require.Len(t, pipeline.Tasks, 5)

	compile := pipeline.Tasks[0]
	assert.Equal(t, "compile", compile.Name)
	require.Len(t, compile.Produces, 1)
	assert.Equal(t, domain.Producer{
		Artifact:  domain.JavacClasses,
		Operation: domain.OperationInitial,
		Mode:      domain.OutputDirectory,
		Name:      "classes",
	}, compile.Produces[0])

	kapt := pipeline.Tasks[1].Produces[0]
	assert.Equal(t, domain.JavacClasses, kapt.Artifact)
	assert.Equal(t, domain.OperationAppend, kapt.Operation)
	assert.Equal(t, domain.OutputDirectory, kapt.Mode)
	assert.Empty(t, kapt.Name)

	resources := pipeline.Tasks[2].Produces[0]
	assert.Equal(t, domain.OutputPaths, resources.Mode)
	assert.Equal(t, []string{"src/main/resources"}, resources.Paths)

	signing, err := pipeline.Catalog.Lookup("SIGNING_CONFIG")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryIntermediates, signing.Category)
	sign := pipeline.Tasks[3].Produces[0]
	assert.Equal(t, signing, sign.Artifact)
	assert.Equal(t, domain.OutputFile, sign.Mode)
	assert.Equal(t, "signing/config.json", sign.Location)

	bundle := pipeline.Tasks[4]
	assert.Equal(t, []domain.ArtifactType{domain.JavacClasses, domain.JavaResources}, bundle.Consumes)
}

func TestLoader_Load_Defaults(t *testing.T) {
	path := writeConfig(t, `
project: lib
tasks:
  - name: copy
    produces:
      - artifact: BUNDLE
        operation: initial
        from: JAVAC_CLASSES
`)

	pipeline, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"main"}, pipeline.Variants)
	assert.Equal(t, filepath.Join(filepath.Dir(path), domain.DefaultBuildDir), pipeline.BuildDir)
	p := pipeline.Tasks[0].Produces[0]
	assert.Equal(t, domain.OutputFrom, p.Mode)
	assert.Equal(t, domain.JavacClasses, p.From)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "invalid yaml",
			content: "project: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "missing project",
			content: "tasks: []",
			wantErr: domain.ErrInvalidPipeline,
		},
		{
			name:    "invalid project name",
			content: "project: 'my app'",
			wantErr: domain.ErrInvalidPipeline,
		},
		{
			name:    "duplicate variant",
			content: "project: app\nvariants: [debug, debug]",
			wantErr: domain.ErrInvalidPipeline,
		},
		{
			name: "duplicate task",
			content: `
project: app
tasks:
  - name: a
  - name: a
`,
			wantErr: domain.ErrTaskAlreadyExists,
		},
		{
			name: "unknown artifact type",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: NOPE
        operation: initial
        file: x
`,
			wantErr: domain.ErrUnknownArtifactType,
		},
		{
			name: "unknown consumed type",
			content: `
project: app
tasks:
  - name: a
    consumes: [NOPE]
`,
			wantErr: domain.ErrUnknownArtifactType,
		},
		{
			name: "unsupported operation",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: BUNDLE
        operation: merge
        file: x
`,
			wantErr: domain.ErrUnsupportedOperation,
		},
		{
			name: "no output",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: BUNDLE
        operation: initial
`,
			wantErr: domain.ErrInvalidProducer,
		},
		{
			name: "two outputs",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: BUNDLE
        operation: initial
        file: x
        paths: [y]
`,
			wantErr: domain.ErrInvalidProducer,
		},
		{
			name: "location with paths",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: BUNDLE
        operation: initial
        paths: [y]
        location: z
`,
			wantErr: domain.ErrInvalidProducer,
		},
		{
			name: "file for a directory type",
			content: `
project: app
tasks:
  - name: a
    produces:
      - artifact: JAVAC_CLASSES
        operation: initial
        file: x
`,
			wantErr: domain.ErrKindMismatch,
		},
		{
			name: "unknown category",
			content: `
project: app
artifactTypes:
  CUSTOM: {category: nowhere, kind: file}
`,
			wantErr: domain.ErrInvalidPipeline,
		},
		{
			name: "builtin redefined",
			content: `
project: app
artifactTypes:
  BUNDLE: {category: intermediates, kind: directory}
`,
			wantErr: domain.ErrArtifactTypeConflict,
		},
		{
			name: "condition does not compile",
			content: `
project: app
tasks:
  - name: a
    when: variant ==
`,
			wantErr: domain.ErrInvalidCondition,
		},
		{
			name: "condition is not boolean",
			content: `
project: app
tasks:
  - name: a
    when: variant
`,
			wantErr: domain.ErrInvalidCondition,
		},
		{
			name: "condition uses unknown name",
			content: `
project: app
tasks:
  - name: a
    when: flavor == "free"
`,
			wantErr: domain.ErrInvalidCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoader_Load_Conditions(t *testing.T) {
	path := writeConfig(t, `
project: app
variants: [debug, release, staging]
tasks:
  - name: sign
    when: variant != "debug"
  - name: appOnly
    when: project == "app" && variant in ["staging"]
  - name: always
`)

	pipeline, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, pipeline.Tasks, 3)

	enabled := func(task domain.PipelineTask) []string {
		var res []string
		for _, v := range pipeline.Variants {
			ok, err := task.Enabled(pipeline.Project, v)
			require.NoError(t, err)
			if ok {
				res = append(res, v)
			}
		}
		return res
	}
	assert.Equal(t, []string{"release", "staging"}, enabled(pipeline.Tasks[0]))
	assert.Equal(t, []string{"staging"}, enabled(pipeline.Tasks[1]))
	assert.Nil(t, pipeline.Tasks[2].When)
	assert.Equal(t, []string{"debug", "release", "staging"}, enabled(pipeline.Tasks[2]))
}
