package domain

// Task is a configured unit of work of one variant, with the tasks it must wait for.
type Task struct {
	Path         TaskPath
	Produces     []ArtifactType
	Consumes     []ArtifactType
	Dependencies []TaskPath
}
