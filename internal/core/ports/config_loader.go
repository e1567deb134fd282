package ports

import "go.trai.ch/kumade/internal/core/domain"

// ConfigLoader defines the interface for loading the task file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the task file and declares its tasks into a fresh registry.
	// An empty file means discovering the task file from cwd upward.
	// Overrides are applied to the declared config items before tasks are built.
	Load(cwd, file string, overrides map[string]string) (*domain.Project, error)
}
