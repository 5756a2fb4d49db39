// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/ledger/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the pipeline configuration at path.
	Load(path string) (*domain.Pipeline, error)
}
