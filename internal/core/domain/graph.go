// Package domain contains the core domain models for artifact bookkeeping and task ordering.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of tasks.
type Graph struct {
	tasks          map[TaskPath]Task
	executionOrder []TaskPath
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[TaskPath]Task),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same path already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Path]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "cannot add task"), "task", t.Path.String())
	}
	g.tasks[t.Path] = *t
	return nil
}

// Len returns the number of tasks.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Task returns the task registered under path.
func (g *Graph) Task(path TaskPath) (Task, bool) {
	t, ok := g.tasks[path]
	return t, ok
}

// Validate checks for cycles in the graph using a topological sort.
// It populates the execution order if successful. Tasks are visited in path order
// so the result is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]TaskPath, 0, len(g.tasks))
	visited := make(map[TaskPath]int) // 0: unvisited, 1: visiting, 2: visited
	var path []TaskPath

	var visit func(u TaskPath) error
	visit = func(u TaskPath) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "cannot order tasks"), "dependency", u.String())
		}

		deps := SortTaskPaths(slices.Clone(task.Dependencies))
		for _, dep := range deps {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	names := make([]TaskPath, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name)
	}
	for _, name := range SortTaskPaths(names) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []TaskPath, dep TaskPath) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "cannot order tasks"), "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}
