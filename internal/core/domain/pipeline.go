package domain

// OutputMode selects which holder operation a producer declaration maps to.
type OutputMode int

const (
	// OutputFile creates a single file output.
	OutputFile OutputMode = iota
	// OutputDirectory creates a single directory output.
	OutputDirectory
	// OutputPaths registers existing or externally produced paths.
	OutputPaths
	// OutputFrom registers the current output of another artifact type.
	OutputFrom
)

// String returns the lowercase mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputFile:
		return "file"
	case OutputDirectory:
		return "directory"
	case OutputPaths:
		return "paths"
	case OutputFrom:
		return "from"
	default:
		return "unknown"
	}
}

// Producer declares one output of a pipeline task.
type Producer struct {
	Artifact  ArtifactType
	Operation OperationType
	Mode      OutputMode
	// Name is the requested file or directory name for OutputFile and OutputDirectory.
	Name string
	// Location, when set, is the requested path relative to the build directory.
	Location string
	// Paths are the raw paths for OutputPaths.
	Paths []string
	// From is the source artifact type for OutputFrom.
	From ArtifactType
}

// Condition decides whether a task takes part in a variant.
type Condition interface {
	Matches(project, variant string) (bool, error)
}

// PipelineTask is a task declared by the pipeline configuration.
type PipelineTask struct {
	Name     string
	Produces []Producer
	Consumes []ArtifactType
	// When restricts the task to the variants it matches. Nil matches every variant.
	When Condition
}

// Enabled reports whether the task takes part in variant.
func (t PipelineTask) Enabled(project, variant string) (bool, error) {
	if t.When == nil {
		return true, nil
	}
	return t.When.Matches(project, variant)
}

// Pipeline is the configuration for one project.
// Tasks are registered in declaration order for every variant.
type Pipeline struct {
	Project    string
	ProjectDir string
	BuildDir   string
	Variants   []string
	Catalog    *Catalog
	Tasks      []PipelineTask
}
