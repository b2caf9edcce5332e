package driven

import "github.com/calvera-labs/vtrain-cli/internal/core/domain"

// JobConfigStore loads the declarative job config.
// Backed by a TOML file in the project directory.
type JobConfigStore interface {
	// Load reads the config at path with defaults applied.
	Load(path string) (*domain.JobConfig, error)
}
