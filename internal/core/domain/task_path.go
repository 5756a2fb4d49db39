package domain

import (
	"strings"
	"unique"
)

// TaskPath identifies a task, e.g. ":app:compileDebugJavac".
// It wraps a unique.Handle[string] because the same paths repeat across every file-set snapshot.
type TaskPath struct {
	h unique.Handle[string]
}

// NewTaskPath interns s as a TaskPath.
func NewTaskPath(s string) TaskPath {
	return TaskPath{h: unique.Make(s)}
}

// ProjectTaskPath builds the path of task name inside project.
// An empty project yields a root-level path.
func ProjectTaskPath(project, name string) TaskPath {
	if project == "" {
		return NewTaskPath(":" + name)
	}
	return NewTaskPath(":" + strings.Trim(project, ":") + ":" + name)
}

// String returns the full path.
func (p TaskPath) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether p was never set.
func (p TaskPath) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// Name returns the last path segment.
func (p TaskPath) Name() string {
	s := p.String()
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Compare orders task paths lexically.
func (p TaskPath) Compare(other TaskPath) int {
	return strings.Compare(p.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (p TaskPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TaskPath) UnmarshalText(text []byte) error {
	p.h = unique.Make(string(text))
	return nil
}
