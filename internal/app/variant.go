package app

import (
	"fmt"
	"strings"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/ledger/internal/engine/artifacts"
	"go.trai.ch/zerr"
)

// configureVariant registers every task of the pipeline with a fresh holder, in declaration
// order, then derives the task graph from what each task consumes.
func configureVariant(
	pipeline *domain.Pipeline,
	variant string,
	issues ports.IssueReporter,
	resolver ports.InputResolver,
) (VariantPlan, error) {
	buildDir := pipeline.BuildDir
	holder := artifacts.NewHolder(variant, pipeline.ProjectDir, func() string { return buildDir }, issues)
	c := &producerContext{
		holder:     holder,
		projectDir: pipeline.ProjectDir,
		resolver:   resolver,
		issues:     issues,
	}

	tasks := make([]*domain.Task, 0, len(pipeline.Tasks))
	for _, pt := range pipeline.Tasks {
		enabled, err := pt.Enabled(pipeline.Project, variant)
		if err != nil {
			return VariantPlan{}, zerr.With(zerr.Wrap(err, "failed to evaluate task condition"), "task", pt.Name)
		}
		if !enabled {
			continue
		}
		task := &domain.Task{
			Path:     domain.ProjectTaskPath(pipeline.Project, holder.TaskName(pt.Name)),
			Consumes: pt.Consumes,
		}
		deps := newDependencySet(task.Path)
		for _, p := range pt.Produces {
			inputs, err := c.register(task.Path, p)
			if err != nil {
				return VariantPlan{}, zerr.With(zerr.Wrap(err, "failed to register producer"), "task", task.Path.String())
			}
			deps.addAll(inputs)
			task.Produces = append(task.Produces, p.Artifact)
		}
		task.Dependencies = deps.paths
		tasks = append(tasks, task)
	}

	// Consumers wait for the final producers, so this pass runs after every registration.
	graph := domain.NewGraph()
	for _, task := range tasks {
		deps := newDependencySet(task.Path)
		deps.addAll(task.Dependencies)
		for _, t := range task.Consumes {
			deps.addAll(holder.GetFinalArtifactFiles(t).BuildDependencies())
		}
		task.Dependencies = domain.SortTaskPaths(deps.paths)
		if err := graph.AddTask(task); err != nil {
			return VariantPlan{}, err
		}
	}
	if err := graph.Validate(); err != nil {
		return VariantPlan{}, err
	}

	order := make([]domain.TaskPath, 0, graph.Len())
	for task := range graph.Walk() {
		order = append(order, task.Path)
	}

	return VariantPlan{
		Variant: variant,
		Order:   order,
		Holder:  holder,
		Report:  holder.CreateReport(),
	}, nil
}

type producerContext struct {
	holder     *artifacts.Holder
	projectDir string
	resolver   ports.InputResolver
	issues     ports.IssueReporter
}

// register maps one producer declaration to a holder operation. It returns the tasks
// whose output the producer reads: the current producers of the artifact for a
// transform, and those of the source artifact for a copy.
func (c *producerContext) register(label domain.TaskPath, p domain.Producer) ([]domain.TaskPath, error) {
	holder := c.holder
	var inputs []domain.TaskPath
	if p.Operation == domain.OperationTransform {
		inputs = holder.GetArtifactFiles(p.Artifact).BuildDependencies()
	}

	var err error
	switch p.Mode {
	case domain.OutputFile:
		switch {
		case p.Location != "":
			_, err = holder.CreateArtifactFileAt(p.Artifact, p.Operation, label, p.Location)
		case p.Name != "":
			_, err = holder.CreateArtifactFile(p.Artifact, p.Operation, label, p.Name)
		default:
			_, err = holder.CreateArtifactFile(p.Artifact, p.Operation, label, holder.ArtifactFilename(p.Artifact))
		}
	case domain.OutputDirectory:
		if p.Location != "" {
			_, err = holder.CreateDirectoryAt(p.Artifact, p.Operation, label, p.Location)
		} else {
			_, err = holder.CreateDirectory(p.Artifact, p.Operation, label, p.Name)
		}
	case domain.OutputPaths:
		var sources []string
		sources, err = c.sources(label, p)
		if err == nil {
			_, err = holder.CreateBuildableArtifact(p.Artifact, p.Operation, label, domain.Paths(sources...))
		}
	case domain.OutputFrom:
		src := holder.GetArtifactFiles(p.From)
		inputs = append(inputs, src.BuildDependencies()...)
		_, err = holder.CreateBuildableArtifact(p.Artifact, p.Operation, label, domain.FromSet(src))
	default:
		err = zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "unknown output mode"), "mode", p.Mode.String())
	}
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// sources expands the producer's glob patterns. Patterns that match nothing are reported.
func (c *producerContext) sources(label domain.TaskPath, p domain.Producer) ([]string, error) {
	resolved, err := c.resolver.ResolveInputs(p.Paths, c.projectDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve source paths")
	}
	if len(resolved) == 0 {
		c.issues.Report(domain.Issue{
			Severity: domain.SeverityWarning,
			Holder:   c.holder.ID(),
			Artifact: p.Artifact.Name,
			Message:  fmt.Sprintf("%s: no file matches %s", label, strings.Join(p.Paths, ", ")),
		})
	}
	return resolved, nil
}

type dependencySet struct {
	self  domain.TaskPath
	seen  map[domain.TaskPath]bool
	paths []domain.TaskPath
}

func newDependencySet(self domain.TaskPath) *dependencySet {
	return &dependencySet{self: self, seen: make(map[domain.TaskPath]bool)}
}

func (s *dependencySet) addAll(paths []domain.TaskPath) {
	for _, p := range paths {
		if p == s.self || p.IsZero() || s.seen[p] {
			continue
		}
		s.seen[p] = true
		s.paths = append(s.paths, p)
	}
}
