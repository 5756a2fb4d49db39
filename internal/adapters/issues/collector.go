// Package issues collects diagnostics raised while assembling a pipeline.
package issues

import (
	"slices"
	"sync"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
)

var _ ports.IssueReporter = (*Collector)(nil)

// Collector implements ports.IssueReporter. Every issue is kept and forwarded to the logger.
type Collector struct {
	logger ports.Logger

	mu     sync.Mutex
	issues []domain.Issue
}

// NewCollector creates a Collector logging through logger.
func NewCollector(logger ports.Logger) *Collector {
	return &Collector{logger: logger}
}

// Report records an issue.
func (c *Collector) Report(issue domain.Issue) {
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()

	args := []any{"variant", issue.Holder}
	if issue.Artifact != "" {
		args = append(args, "artifact", issue.Artifact)
	}
	if issue.Severity == domain.SeverityError {
		args = append(args, "severity", issue.Severity.String())
	}
	c.logger.Warn(issue.Message, args...)
}

// Issues returns the recorded issues in reporting order.
func (c *Collector) Issues() []domain.Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.issues)
}

// HasErrors reports whether an error-severity issue was recorded.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.ContainsFunc(c.issues, func(i domain.Issue) bool { return i.Severity == domain.SeverityError })
}
