package driven

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// SubmissionStore persists the local ledger of submitted jobs.
// Backed by SQLite.
type SubmissionStore interface {
	// Save records a new submission.
	Save(ctx context.Context, sub *domain.Submission) error

	// List returns submissions ordered by creation time descending.
	// A limit of 0 returns everything.
	List(ctx context.Context, limit int) ([]domain.Submission, error)

	// GetByResourceName retrieves a submission by its full resource name.
	// Returns domain.ErrNotFound when no such record exists.
	GetByResourceName(ctx context.Context, resourceName string) (*domain.Submission, error)

	// UpdateState sets the last observed state for a submission.
	UpdateState(ctx context.Context, id string, state domain.JobState) error
}
