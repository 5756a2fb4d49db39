package domain

// Severity ranks an Issue.
type Severity int

const (
	// SeverityWarning does not stop pipeline assembly.
	SeverityWarning Severity = iota
	// SeverityError marks a registration that could not be honored.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is a diagnostic raised while assembling a pipeline.
type Issue struct {
	Severity Severity
	Holder   string
	Artifact string
	Message  string
}
