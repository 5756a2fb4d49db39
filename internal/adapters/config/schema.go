package config

// Ledgerfile represents the structure of the ledger.yaml configuration file.
type Ledgerfile struct {
	Version       string                     `yaml:"version"`
	Project       string                     `yaml:"project"`
	BuildDir      string                     `yaml:"buildDir"`
	Variants      []string                   `yaml:"variants"`
	ArtifactTypes map[string]ArtifactTypeDTO `yaml:"artifactTypes"`
	Tasks         []TaskDTO                  `yaml:"tasks"`
}

// ArtifactTypeDTO declares a custom artifact type.
type ArtifactTypeDTO struct {
	Category string `yaml:"category"`
	Kind     string `yaml:"kind"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Name     string        `yaml:"name"`
	Produces []ProducerDTO `yaml:"produces"`
	Consumes []string      `yaml:"consumes"`
	// When is an expression over `project` and `variant`, e.g. `variant != "debug"`.
	When string `yaml:"when"`
}

// ProducerDTO declares one output of a task. Exactly one of File, Directory, Paths and
// From is set, unless Location alone is given.
type ProducerDTO struct {
	Artifact  string   `yaml:"artifact"`
	Operation string   `yaml:"operation"`
	File      *string  `yaml:"file"`
	Directory *string  `yaml:"directory"`
	Paths     []string `yaml:"paths"`
	From      string   `yaml:"from"`
	Location  string   `yaml:"location"`
}
