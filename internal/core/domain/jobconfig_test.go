package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobConfig_ApplyDefaults_FillsUnsetFields(t *testing.T) {
	cfg := JobConfig{ImageURI: "gcr.io/demo/trainer:latest"}

	cfg.ApplyDefaults()

	assert.Equal(t, "us-central1", cfg.Location)
	assert.Equal(t, "vtrain-job", cfg.DisplayName)
	assert.Equal(t, "n1-standard-8", cfg.MachineType)
	assert.Equal(t, "NVIDIA_TESLA_T4", cfg.AcceleratorType)
	assert.Equal(t, int64(1), cfg.AcceleratorCount)
	assert.Equal(t, int64(1), cfg.ReplicaCount)
}

func TestJobConfig_ApplyDefaults_KeepsSetFields(t *testing.T) {
	cfg := JobConfig{
		Location:         "europe-west4",
		DisplayName:      "detector-v3",
		MachineType:      "a2-highgpu-1g",
		AcceleratorType:  "NVIDIA_TESLA_A100",
		AcceleratorCount: 4,
		ReplicaCount:     2,
	}

	cfg.ApplyDefaults()

	assert.Equal(t, "europe-west4", cfg.Location)
	assert.Equal(t, "detector-v3", cfg.DisplayName)
	assert.Equal(t, "a2-highgpu-1g", cfg.MachineType)
	assert.Equal(t, "NVIDIA_TESLA_A100", cfg.AcceleratorType)
	assert.Equal(t, int64(4), cfg.AcceleratorCount)
	assert.Equal(t, int64(2), cfg.ReplicaCount)
}

func TestJobConfig_Validate(t *testing.T) {
	cfg := JobConfig{ImageURI: "gcr.io/demo/trainer:latest"}

	assert.NoError(t, cfg.Validate())
}

func TestJobConfig_Validate_MissingImage(t *testing.T) {
	cfg := JobConfig{}

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingImageURI)
	assert.Contains(t, err.Error(), "build and push")
}
