package driving

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// SubmitOverrides are command-line tweaks applied on top of the job
// config file. Zero values mean "not set".
type SubmitOverrides struct {
	// ConfigPath is the job config file to load.
	ConfigPath string

	// Epochs overrides the training epoch count.
	Epochs int

	// BatchSize overrides the total train batch size.
	BatchSize int

	// CheckpointFreq overrides the checkpoint interval.
	CheckpointFreq int

	// TestOnly runs evaluation instead of training.
	TestOnly bool
}

// JobSubmitter creates managed training jobs and tracks them in the
// local ledger.
type JobSubmitter interface {
	// Submit builds a custom job from the config file plus overrides,
	// creates it remotely, and records it in the ledger.
	Submit(ctx context.Context, ov SubmitOverrides) (*domain.Submission, error)

	// List returns recent ledger records, newest first. A limit of 0
	// returns everything.
	List(ctx context.Context, limit int) ([]domain.Submission, error)

	// SyncStates refreshes every non-terminal ledger record from the
	// API and returns the refreshed set, newest first.
	SyncStates(ctx context.Context) ([]domain.Submission, error)
}
