package driven

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// JobClient talks to the managed training service.
// Backed by the Vertex AI custom jobs API.
type JobClient interface {
	// CreateJob submits a custom job and returns the created record with
	// its resource name and initial state filled in.
	CreateJob(ctx context.Context, job domain.TrainingJob) (*domain.Submission, error)

	// JobState fetches the current lifecycle state of a job.
	JobState(ctx context.Context, resourceName string) (domain.JobState, error)
}
