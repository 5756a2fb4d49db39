// Package config provides the pipeline configuration loader for ledger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the pipeline configuration at path.
func (l *Loader) Load(path string) (*domain.Pipeline, error) {
	var file Ledgerfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	projectDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project directory")
	}

	if err := validateName("project", file.Project); err != nil {
		return nil, err
	}

	variants, err := l.variants(file.Variants)
	if err != nil {
		return nil, err
	}

	catalog, err := buildCatalog(file.ArtifactTypes)
	if err != nil {
		return nil, err
	}

	tasks, err := buildTasks(file.Tasks, catalog)
	if err != nil {
		return nil, err
	}

	return &domain.Pipeline{
		Project:    file.Project,
		ProjectDir: projectDir,
		BuildDir:   resolveBuildDir(projectDir, file.BuildDir),
		Variants:   variants,
		Catalog:    catalog,
		Tasks:      tasks,
	}, nil
}

func (l *Loader) variants(declared []string) ([]string, error) {
	if len(declared) == 0 {
		l.Logger.Warn("no variants declared, using the default variant", "variant", "main")
		return []string{"main"}, nil
	}
	seen := make(map[string]bool, len(declared))
	res := make([]string, 0, len(declared))
	for _, v := range declared {
		if err := validateName("variant", v); err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPipeline, "duplicate variant"), "variant", v)
		}
		seen[v] = true
		res = append(res, v)
	}
	return res, nil
}

func buildCatalog(custom map[string]ArtifactTypeDTO) (*domain.Catalog, error) {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	slices.Sort(names)

	extra := make([]domain.ArtifactType, 0, len(names))
	for _, name := range names {
		dto := custom[name]
		category, ok := domain.ParseCategory(dto.Category)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidPipeline, "unknown artifact category"), "artifact", name)
			return nil, zerr.With(err, "category", dto.Category)
		}
		kind, ok := domain.ParseKind(dto.Kind)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidPipeline, "unknown artifact kind"), "artifact", name)
			return nil, zerr.With(err, "kind", dto.Kind)
		}
		extra = append(extra, domain.ArtifactType{Name: strings.ToUpper(name), Category: category, Kind: kind})
	}
	return domain.NewCatalog(extra...)
}

func buildTasks(dtos []TaskDTO, catalog *domain.Catalog) ([]domain.PipelineTask, error) {
	seen := make(map[string]bool, len(dtos))
	tasks := make([]domain.PipelineTask, 0, len(dtos))
	for _, dto := range dtos {
		if err := validateName("task", dto.Name); err != nil {
			return nil, err
		}
		if seen[dto.Name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrTaskAlreadyExists, "task declared twice"), "task", dto.Name)
		}
		seen[dto.Name] = true

		task := domain.PipelineTask{Name: dto.Name}
		if dto.When != "" {
			cond, err := compileCondition(dto.When)
			if err != nil {
				return nil, zerr.With(err, "task", dto.Name)
			}
			task.When = cond
		}
		for i, p := range dto.Produces {
			producer, err := buildProducer(p, catalog)
			if err != nil {
				err = zerr.With(err, "task", dto.Name)
				return nil, zerr.With(err, "produces_index", i)
			}
			task.Produces = append(task.Produces, producer)
		}
		for _, name := range dto.Consumes {
			t, err := catalog.Lookup(name)
			if err != nil {
				return nil, zerr.With(err, "task", dto.Name)
			}
			task.Consumes = append(task.Consumes, t)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func buildProducer(dto ProducerDTO, catalog *domain.Catalog) (domain.Producer, error) {
	t, err := catalog.Lookup(dto.Artifact)
	if err != nil {
		return domain.Producer{}, err
	}
	op, err := domain.ParseOperationType(dto.Operation)
	if err != nil {
		return domain.Producer{}, zerr.With(err, "artifact", t.Name)
	}

	p := domain.Producer{Artifact: t, Operation: op, Location: dto.Location}
	mode, err := producerMode(dto, t)
	if err != nil {
		return domain.Producer{}, err
	}
	p.Mode = mode

	switch mode {
	case domain.OutputFile:
		p.Name = deref(dto.File)
	case domain.OutputDirectory:
		p.Name = deref(dto.Directory)
	case domain.OutputPaths:
		p.Paths = dto.Paths
	case domain.OutputFrom:
		from, err := catalog.Lookup(dto.From)
		if err != nil {
			return domain.Producer{}, zerr.With(err, "artifact", t.Name)
		}
		p.From = from
	}

	if err := checkKind(p); err != nil {
		return domain.Producer{}, err
	}
	return p, nil
}

// producerMode picks the output mode from the single field that is set. A bare location
// takes the mode from the artifact kind.
func producerMode(dto ProducerDTO, t domain.ArtifactType) (domain.OutputMode, error) {
	var modes []domain.OutputMode
	if dto.File != nil {
		modes = append(modes, domain.OutputFile)
	}
	if dto.Directory != nil {
		modes = append(modes, domain.OutputDirectory)
	}
	if len(dto.Paths) > 0 {
		modes = append(modes, domain.OutputPaths)
	}
	if dto.From != "" {
		modes = append(modes, domain.OutputFrom)
	}

	switch {
	case len(modes) == 1:
		if dto.Location != "" && modes[0] != domain.OutputFile && modes[0] != domain.OutputDirectory {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "location only applies to file and directory outputs"), "artifact", t.Name)
			return 0, zerr.With(err, "mode", modes[0].String())
		}
		return modes[0], nil
	case len(modes) == 0 && dto.Location != "":
		if t.Kind == domain.KindDirectory {
			return domain.OutputDirectory, nil
		}
		return domain.OutputFile, nil
	case len(modes) == 0:
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "no output declared"), "artifact", t.Name)
	default:
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = m.String()
		}
		err := zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "more than one output declared"), "artifact", t.Name)
		return 0, zerr.With(err, "modes", strings.Join(names, ","))
	}
}

func checkKind(p domain.Producer) error {
	var want domain.Kind
	switch p.Mode {
	case domain.OutputFile:
		want = domain.KindFile
	case domain.OutputDirectory:
		want = domain.KindDirectory
	default:
		return nil
	}
	if p.Artifact.Kind == want {
		return nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrKindMismatch, fmt.Sprintf("%s output declared for a %s artifact", p.Mode, p.Artifact.Kind)), "artifact", p.Artifact.Name)
	return zerr.With(err, "mode", p.Mode.String())
}

func validateName(what, name string) error {
	if name == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidPipeline, "missing name"), "field", what)
	}
	if !validNameRegex.MatchString(name) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidPipeline, "invalid name"), "field", what)
		return zerr.With(err, "name", name)
	}
	return nil
}

func resolveBuildDir(projectDir, configured string) string {
	if configured == "" {
		configured = domain.DefaultBuildDir
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(projectDir, configured)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
	}
	return nil
}
