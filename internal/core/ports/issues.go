package ports

import "go.trai.ch/ledger/internal/core/domain"

// IssueReporter receives diagnostics raised while assembling a pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=issues.go -destination=mocks/mock_issues.go -package=mocks
type IssueReporter interface {
	Report(issue domain.Issue)
}
