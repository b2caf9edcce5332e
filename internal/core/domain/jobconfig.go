package domain

import "fmt"

// Defaults used when the job config file leaves fields unset.
const (
	DefaultLocation        = "us-central1"
	DefaultDisplayName     = "vtrain-job"
	DefaultMachineType     = "n1-standard-8"
	DefaultAcceleratorType = "NVIDIA_TESLA_T4"
)

// JobConfig is the declarative description of a training job, read from
// the job config file and adjusted by environment and CLI overrides.
type JobConfig struct {
	// Project is the GCP project ID. Empty falls back to the GCP_PROJECT
	// environment variable, then to the application default credentials.
	Project string

	// Location is the Vertex AI region.
	Location string

	// DisplayName labels the job in the console.
	DisplayName string

	// MachineType is the Compute Engine machine type per replica.
	MachineType string

	// AcceleratorType names the GPU per replica.
	AcceleratorType string

	// AcceleratorCount is the number of accelerators per replica.
	AcceleratorCount int64

	// ReplicaCount is the worker pool size.
	ReplicaCount int64

	// ServiceAccount runs the job when set.
	ServiceAccount string

	// ImageURI is the training container image. Required.
	ImageURI string

	// StagingBucket is the GCS base output directory for the job.
	StagingBucket string

	// DataPath is the gs:// prefix handed to the container as its
	// dataset location.
	DataPath string

	// Args are the container arguments before CLI overrides.
	Args []string

	// Labels are attached to the job.
	Labels map[string]string

	// WandbAPIKey is injected into the container env when set.
	WandbAPIKey string
}

// ApplyDefaults fills unset fields with the standard single-GPU shape.
func (c *JobConfig) ApplyDefaults() {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.DisplayName == "" {
		c.DisplayName = DefaultDisplayName
	}
	if c.MachineType == "" {
		c.MachineType = DefaultMachineType
	}
	if c.AcceleratorType == "" {
		c.AcceleratorType = DefaultAcceleratorType
	}
	if c.AcceleratorCount == 0 {
		c.AcceleratorCount = 1
	}
	if c.ReplicaCount == 0 {
		c.ReplicaCount = 1
	}
}

// Validate checks the config can be submitted. The project is checked
// later, after credential-based fallback had its chance.
func (c *JobConfig) Validate() error {
	if c.ImageURI == "" {
		return fmt.Errorf("%w: build and push the training image, then set container_image_uri", ErrMissingImageURI)
	}
	return nil
}
