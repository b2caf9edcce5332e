package domain

import (
	"fmt"
	"strings"
	"time"
)

// JobState mirrors the Vertex AI custom job lifecycle states.
type JobState string

const (
	JobStateUnspecified JobState = "JOB_STATE_UNSPECIFIED"
	JobStateQueued      JobState = "JOB_STATE_QUEUED"
	JobStatePending     JobState = "JOB_STATE_PENDING"
	JobStateRunning     JobState = "JOB_STATE_RUNNING"
	JobStateSucceeded   JobState = "JOB_STATE_SUCCEEDED"
	JobStateFailed      JobState = "JOB_STATE_FAILED"
	JobStateCancelling  JobState = "JOB_STATE_CANCELLING"
	JobStateCancelled   JobState = "JOB_STATE_CANCELLED"
	JobStatePaused      JobState = "JOB_STATE_PAUSED"
	JobStateExpired     JobState = "JOB_STATE_EXPIRED"
)

// Terminal reports whether the state can no longer change, meaning a
// ledger refresh never needs to ask the API about this job again.
func (s JobState) Terminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled, JobStateExpired:
		return true
	}
	return false
}

// Short strips the JOB_STATE_ prefix for display.
func (s JobState) Short() string {
	return strings.TrimPrefix(string(s), "JOB_STATE_")
}

// TrainingJob describes a custom training job to submit.
type TrainingJob struct {
	// Project is the GCP project ID.
	Project string

	// Location is the Vertex AI region, e.g. "us-central1".
	Location string

	// DisplayName is the human-readable job name shown in the console.
	DisplayName string

	// MachineType is the Compute Engine machine type for each replica.
	MachineType string

	// AcceleratorType names the GPU attached to each replica. Empty means
	// CPU only.
	AcceleratorType string

	// AcceleratorCount is the number of accelerators per replica.
	AcceleratorCount int64

	// ReplicaCount is the worker pool size.
	ReplicaCount int64

	// ServiceAccount runs the job when set. Empty uses the project default.
	ServiceAccount string

	// ImageURI is the training container image.
	ImageURI string

	// Args are passed to the container entrypoint.
	Args []string

	// Env is injected into the container environment.
	Env map[string]string

	// Labels are attached to the job for cost attribution and filtering.
	Labels map[string]string

	// OutputURIPrefix is the GCS base output directory. Empty disables it.
	OutputURIPrefix string
}

// Submission is a ledger record of a job handed to Vertex AI.
type Submission struct {
	// ID is the ledger row identifier.
	ID string

	// ResourceName is the full Vertex AI resource name,
	// projects/<p>/locations/<l>/customJobs/<n>.
	ResourceName string

	// DisplayName is the job's display name at submission time.
	DisplayName string

	// Project is the GCP project the job runs in.
	Project string

	// Location is the Vertex AI region.
	Location string

	// ImageURI is the container image the job was submitted with.
	ImageURI string

	// State is the last observed lifecycle state.
	State JobState

	// CreatedAt is when the submission was recorded.
	CreatedAt time.Time

	// UpdatedAt is when the state was last refreshed.
	UpdatedAt time.Time
}

// JobID returns the numeric tail of the resource name.
func (s Submission) JobID() string {
	return s.ResourceName[strings.LastIndex(s.ResourceName, "/")+1:]
}

// ConsoleURL returns the Cloud Console page for the job.
func (s Submission) ConsoleURL() string {
	return fmt.Sprintf(
		"https://console.cloud.google.com/vertex-ai/locations/%s/training/%s?project=%s",
		s.Location, s.JobID(), s.Project,
	)
}
