package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Ensure JobConfigStore implements the interface.
var _ driven.JobConfigStore = (*JobConfigStore)(nil)

// jobConfigFile mirrors the TOML schema of vertex.toml. Field names follow
// the file's snake_case keys, not the domain struct.
type jobConfigFile struct {
	ProjectID         string            `toml:"project_id"`
	Location          string            `toml:"location"`
	DisplayName       string            `toml:"display_name"`
	MachineType       string            `toml:"machine_type"`
	AcceleratorType   string            `toml:"accelerator_type"`
	AcceleratorCount  int64             `toml:"accelerator_count"`
	ReplicaCount      int64             `toml:"replica_count"`
	ServiceAccount    string            `toml:"service_account"`
	ContainerImageURI string            `toml:"container_image_uri"`
	StagingBucket     string            `toml:"staging_bucket"`
	GCSDataPath       string            `toml:"gcs_data_path"`
	Args              []string          `toml:"args"`
	Labels            map[string]string `toml:"labels"`
	WandbAPIKey       string            `toml:"wandb_api_key"`
}

// JobConfigStore is a file-based implementation of driven.JobConfigStore
// using TOML. Each Load call reads the file fresh, so an edited config is
// picked up without restarting anything.
type JobConfigStore struct{}

// NewJobConfigStore creates a TOML-backed job config loader.
func NewJobConfigStore() *JobConfigStore {
	return &JobConfigStore{}
}

// Load reads the config at path with defaults applied.
func (s *JobConfigStore) Load(path string) (*domain.JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job config: %w", err)
	}

	var raw jobConfigFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := &domain.JobConfig{
		Project:          raw.ProjectID,
		Location:         raw.Location,
		DisplayName:      raw.DisplayName,
		MachineType:      raw.MachineType,
		AcceleratorType:  raw.AcceleratorType,
		AcceleratorCount: raw.AcceleratorCount,
		ReplicaCount:     raw.ReplicaCount,
		ServiceAccount:   raw.ServiceAccount,
		ImageURI:         raw.ContainerImageURI,
		StagingBucket:    raw.StagingBucket,
		DataPath:         raw.GCSDataPath,
		Args:             raw.Args,
		Labels:           raw.Labels,
		WandbAPIKey:      raw.WandbAPIKey,
	}
	cfg.ApplyDefaults()

	return cfg, nil
}
