package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateInitialProducer is returned when an initial producer is registered for an
	// artifact type that already has output.
	ErrDuplicateInitialProducer = zerr.New("artifact already has an initial producer")

	// ErrKindMismatch is returned when a file operation targets a directory artifact type or
	// the other way around.
	ErrKindMismatch = zerr.New("artifact kind mismatch")

	// ErrUnsupportedOperation is returned for an operation outside initial, append and transform.
	ErrUnsupportedOperation = zerr.New("unsupported operation type")

	// ErrUnknownArtifactType is returned when an artifact type name is not in the catalog.
	ErrUnknownArtifactType = zerr.New("unknown artifact type")

	// ErrArtifactTypeConflict is returned when a name is registered twice with different attributes.
	ErrArtifactTypeConflict = zerr.New("artifact type already registered with different attributes")

	// ErrLocationFrozen is returned when a frozen output location is relocated.
	ErrLocationFrozen = zerr.New("output location is frozen")

	// ErrMalformedReport is returned when a report cannot be parsed or encoded.
	ErrMalformedReport = zerr.New("malformed artifacts report")

	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownVariant is returned when a requested variant is not declared by the pipeline.
	ErrUnknownVariant = zerr.New("unknown variant")

	// ErrInvalidProducer is returned when a pipeline producer declaration is incomplete or ambiguous.
	ErrInvalidProducer = zerr.New("invalid producer declaration")

	// ErrPlanFailed is returned when at least one variant failed to configure.
	ErrPlanFailed = zerr.New("pipeline planning failed")

	// ErrConfigReadFailed is returned when the pipeline configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the pipeline configuration file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidPipeline is returned when the pipeline configuration is structurally invalid.
	ErrInvalidPipeline = zerr.New("invalid pipeline configuration")

	// ErrMissingOutputs is returned when a verified report names files that do not exist.
	ErrMissingOutputs = zerr.New("artifact files missing")

	// ErrInvalidCondition is returned when a task condition cannot be compiled or evaluated.
	ErrInvalidCondition = zerr.New("invalid task condition")
)
